package argv

import "strings"

// Parse splits command-line tokens into positional arguments and options.
//
// Recognized forms:
//
//	--key=value   string option ("true"/"false" become booleans)
//	--no-key      false
//	--key value   string option, when value does not start with "-"
//	--key         true
//	--            every following token is positional
//
// Single-dash tokens and bare "-" are positional. A boolean flag written
// directly before a positional argument is read as taking that argument
// as its value; write it as --key=true or place it after the positionals.
func Parse(tokens []string) (positional []string, opts Options) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok == "--" {
			positional = append(positional, tokens[i+1:]...)
			break
		}

		if !strings.HasPrefix(tok, "--") {
			positional = append(positional, tok)
			continue
		}

		name := tok[2:]

		if key, value, ok := strings.Cut(name, "="); ok {
			switch value {
			case "true":
				opts = opts.Set(key, true)
			case "false":
				opts = opts.Set(key, false)
			default:
				opts = opts.Set(key, value)
			}
			continue
		}

		if key, ok := strings.CutPrefix(name, "no-"); ok && key != "" {
			opts = opts.Set(key, false)
			continue
		}

		if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
			opts = opts.Set(name, tokens[i+1])
			i++
			continue
		}

		opts = opts.Set(name, true)
	}

	return positional, opts
}
