package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
	longFlagPrefix                    = "--"
	shortFlagPrefix                   = "-"
)

var booleanFlagLiterals = map[string]bool{
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

// booleanFlagValue is a pflag.Value for switches such as --copy and --tokens.
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf("%s %q", booleanFlagInvalidValueErrorLabel, input)
	}
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	if !ok {
		return fmt.Errorf("%s %q for --%s; accepted values: %s", booleanFlagInvalidValueErrorLabel, input, value.flagKey, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

// registerBooleanFlag registers a boolean flag that also accepts yes/no style
// literals, either as --name=value or as a separate argument.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.VarP(&booleanFlagValue{target: target, flagKey: name}, name, shorthand, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins a boolean flag with a following literal,
// so "--copy no" becomes "--copy=no" while "--copy ./src" keeps ./src as the
// project root argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := map[string]string{}
	collectBooleanFlagNames(command, booleanFlags)
	if len(booleanFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		currentArgument := arguments[index]
		if currentArgument == longFlagPrefix {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if flagName, isBoolean := booleanFlags[currentArgument]; isBoolean && index+1 < len(arguments) {
			nextArgument := arguments[index+1]
			literal := strings.ToLower(strings.TrimSpace(nextArgument))
			if _, valid := booleanFlagLiterals[literal]; valid && !strings.HasPrefix(nextArgument, shortFlagPrefix) {
				normalized = append(normalized, fmt.Sprintf("%s%s=%s", longFlagPrefix, flagName, nextArgument))
				index += 2
				continue
			}
		}
		normalized = append(normalized, currentArgument)
		index++
	}
	return normalized
}

// collectBooleanFlagNames maps every spelling of a flag registered through
// registerBooleanFlag ("--name" and "-x") to its long name.
func collectBooleanFlagNames(command *cobra.Command, target map[string]string) {
	if command == nil || target == nil {
		return
	}
	visit := func(flagSet *pflag.FlagSet) {
		if flagSet == nil {
			return
		}
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if flag == nil {
				return
			}
			if _, registered := flag.Value.(*booleanFlagValue); !registered {
				return
			}
			target[longFlagPrefix+flag.Name] = flag.Name
			if flag.Shorthand != "" {
				target[shortFlagPrefix+flag.Shorthand] = flag.Name
			}
		})
	}
	visit(command.PersistentFlags())
	visit(command.Flags())
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
