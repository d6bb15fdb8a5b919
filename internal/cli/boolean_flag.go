package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	optionalBoolFlagTypeName      = "bool"
	optionalBoolTrueLiteral       = "true"
	optionalBoolAcceptedValues    = "true, false, yes, no, on, off, 1, 0"
	optionalBoolInvalidValueLabel = "invalid boolean value"
)

var optionalBoolLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// optionalBool is a boolean flag that remembers whether it was given,
// so configuration file values apply only when the flag is absent.
type optionalBool struct {
	flagName string
	provided bool
	value    bool
}

func (flagValue *optionalBool) Set(input string) error {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = optionalBoolTrueLiteral
	}
	parsed, known := optionalBoolLiterals[normalized]
	if !known {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", optionalBoolInvalidValueLabel, input, flagValue.flagName, optionalBoolAcceptedValues)
	}
	flagValue.provided = true
	flagValue.value = parsed
	return nil
}

func (flagValue *optionalBool) String() string {
	if flagValue == nil || !flagValue.provided {
		return ""
	}
	return strconv.FormatBool(flagValue.value)
}

func (flagValue *optionalBool) Type() string {
	return optionalBoolFlagTypeName
}

// resolve returns the flag value when provided and fallback otherwise.
func (flagValue *optionalBool) resolve(fallback bool) bool {
	if flagValue == nil || !flagValue.provided {
		return fallback
	}
	return flagValue.value
}

func registerOptionalBoolFlag(flagSet *pflag.FlagSet, name string, usage string) *optionalBool {
	flagValue := &optionalBool{flagName: name}
	flagSet.Var(flagValue, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.NoOptDefVal = optionalBoolTrueLiteral
	}
	return flagValue
}

// normalizeBooleanFlagArguments rewrites "--flag no" into "--flag=no" for optional boolean
// flags, because NoOptDefVal makes pflag treat the next word as a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	optionalFlags := map[string]struct{}{}
	collectOptionalBoolFlagNames(command, optionalFlags)
	if len(optionalFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(currentArgument, "--") && !strings.Contains(currentArgument, "=") && index+1 < len(arguments) {
			flagName := strings.TrimPrefix(currentArgument, "--")
			nextArgument := arguments[index+1]
			_, isOptional := optionalFlags[flagName]
			_, isLiteral := optionalBoolLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]
			if isOptional && isLiteral {
				normalized = append(normalized, fmt.Sprintf("--%s=%s", flagName, nextArgument))
				index++
				continue
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectOptionalBoolFlagNames(command *cobra.Command, target map[string]struct{}) {
	visit := func(flag *pflag.Flag) {
		if _, isOptional := flag.Value.(*optionalBool); isOptional {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(visit)
	command.Flags().VisitAll(visit)
	for _, child := range command.Commands() {
		collectOptionalBoolFlagNames(child, target)
	}
}
