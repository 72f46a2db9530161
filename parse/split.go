package parse

import "github.com/google/shlex"

// Split breaks a complete command line into argv tokens, honoring shell
// quoting and escapes.
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
