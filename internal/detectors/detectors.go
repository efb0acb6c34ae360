package detectors

import (
	"regexp"
	"sort"
	"strings"

	"github.com/varalys/pushguard/internal/types"
)

// Detector pairs a human-readable secret kind with the pattern that finds it.
// ID is the stable snake_case handle used by --enable/--disable and SARIF.
type Detector struct {
	ID       string
	Kind     string
	Severity types.Severity
	Pattern  *regexp.Regexp
}

type entry struct {
	id, kind string
	sev      types.Severity
	expr     string
}

// space lists the characters treated as whitespace inside bracket classes.
// It extends RE2's ASCII \s with the vertical tab, the ASCII separators
// 0x1c-0x1f, NEL and every Unicode separator, so a no-break space between a
// key and its value still counts.
const space = `\s\v\x1c-\x1f\x85\p{Z}`

// Order matters: report groups follow the order in which kinds are first
// seen, and within one file kinds are matched in this order.
var table = []entry{
	{"openai_api_key", "OpenAI API Key", types.SevHigh, `sk-[a-zA-Z0-9]{48}`},
	{"anthropic_api_key", "Anthropic API Key", types.SevHigh, `sk-ant-[a-zA-Z0-9-]{95,}`},
	{"generic_api_key", "Generic API Key", types.SevMed, `api[_-]?key["` + space + `:=]+["']?[a-zA-Z0-9]{20,}["']?`},
	{"password", "Password", types.SevMed, `password["` + space + `:=]+["']?[^"` + space + `]{8,}["']?`},
	{"email_address", "Email Address", types.SevLow, `[a-zA-Z0-9._%+-]+@(?:gmail|yahoo|outlook|hotmail|icloud)\.com`},
	{"aws_access_key", "AWS Access Key", types.SevHigh, `AKIA[0-9A-Z]{16}`},
	{"github_token", "GitHub Token", types.SevHigh, `ghp_[a-zA-Z0-9]{36}`},
	{"github_oauth", "GitHub OAuth", types.SevHigh, `gho_[a-zA-Z0-9]{36}`},
	{"slack_token", "Slack Token", types.SevHigh, `xox[baprs]-[a-zA-Z0-9-]+`},
	{"jwt", "JWT Token", types.SevMed, `eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`},
	{"private_key", "Private Key", types.SevHigh, `-----BEGIN (?:RSA |EC |OPENSSH )?PRIVATE KEY-----`},
	{"discord_webhook", "Discord Webhook", types.SevMed, `https://discord\.com/api/webhooks/[0-9]+/[a-zA-Z0-9_-]+`},
	{"stripe_key", "Stripe Key", types.SevHigh, `sk_(?:live|test)_[a-zA-Z0-9]{24,}`},
	{"twilio_auth", "Twilio Auth", types.SevMed, `SK[a-z0-9]{32}`},
	{"database_url", "Database URL", types.SevHigh, `(?:mysql|postgres|mongodb)://[^"` + space + `]+`},
	{"smtp_password", "SMTP Password", types.SevMed, `smtp[_-]?(?:pass|password)["` + space + `:=]+["']?[^"` + space + `]{8,}["']?`},
}

// compiled once; every pattern is case-insensitive.
var catalogue = func() []Detector {
	out := make([]Detector, len(table))
	for i, e := range table {
		out[i] = Detector{
			ID:       e.id,
			Kind:     e.kind,
			Severity: e.sev,
			Pattern:  regexp.MustCompile(`(?i)` + e.expr),
		}
	}
	return out
}()

// Default returns the full catalogue in its canonical order. The slice is a
// copy; the compiled patterns are shared and safe for concurrent use.
func Default() []Detector {
	out := make([]Detector, len(catalogue))
	copy(out, catalogue)
	return out
}

// IDs lists detector IDs in catalogue order.
func IDs() []string {
	ids := make([]string, len(catalogue))
	for i, d := range catalogue {
		ids[i] = d.ID
	}
	return ids
}

// Lookup finds a detector by ID.
func Lookup(id string) (Detector, bool) {
	for _, d := range catalogue {
		if d.ID == id {
			return d, true
		}
	}
	return Detector{}, false
}

// Select narrows ds to the comma-separated enable list (when non-empty) and
// then drops anything in the disable list. Order is preserved.
func Select(ds []Detector, enable, disable string) []Detector {
	allowed := parseIDs(enable)
	blocked := parseIDs(disable)
	if len(allowed) == 0 && len(blocked) == 0 {
		return ds
	}
	var out []Detector
	for _, d := range ds {
		if len(allowed) > 0 && !allowed[d.ID] {
			continue
		}
		if blocked[d.ID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Unknown returns the IDs in list that are not in the catalogue.
func Unknown(list string) []string {
	var out []string
	for id := range parseIDs(list) {
		if _, ok := Lookup(id); !ok {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func parseIDs(s string) map[string]bool {
	m := map[string]bool{}
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			m[id] = true
		}
	}
	return m
}
