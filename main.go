package main

import "github.com/varalys/pushguard/cmd/pushguard"

func main() { pushguard.Execute() }
