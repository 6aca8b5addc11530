package process

import "strings"

// lotFormFields are the form fields checked for a lot identifier, in
// priority order, before falling back to the shift-wide daily lot.
var lotFormFields = []string{"lote", "lote1", "lote2", "lote3"}

// ResolveLotID returns the first non-blank lot identifier from the form
// fields, then the shift's dailyLot. Empty means the submission is
// untracked; that is a normal state, not an error.
func ResolveLotID(form, shift map[string]string) string {
	for _, field := range lotFormFields {
		if v := strings.TrimSpace(form[field]); v != "" {
			return v
		}
	}
	return strings.TrimSpace(shift["dailyLot"])
}
