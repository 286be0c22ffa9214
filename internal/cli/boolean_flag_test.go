package cli

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name              string
		defaultValue      bool
		arguments         []string
		expected          bool
		expectedPositions []string
	}{
		{name: "defaults_to_false", arguments: []string{}, expected: false},
		{name: "sets_true_without_value", arguments: []string{"--feature"}, expected: true},
		{name: "sets_false_with_equals", defaultValue: true, arguments: []string{"--feature=false"}, expected: false},
		{name: "sets_false_with_no_literal", defaultValue: true, arguments: []string{"--feature", "no"}, expected: false},
		{name: "sets_true_with_on_literal", arguments: []string{"--feature", "on"}, expected: true},
		{name: "shorthand_with_literal", defaultValue: true, arguments: []string{"-f", "off"}, expected: false},
		{name: "keeps_root_argument", arguments: []string{"--feature", "./src"}, expected: true, expectedPositions: []string{"./src"}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "boolean-test"}
			flagValue := !testCase.defaultValue
			registerBooleanFlag(command.Flags(), &flagValue, "feature", "f", testCase.defaultValue, "toggle feature behaviour")
			if parseErr := command.ParseFlags(normalizeBooleanFlagArguments(command, testCase.arguments)); parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
			if diff := cmp.Diff(testCase.expectedPositions, command.Flags().Args(), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("positional arguments mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegisterBooleanFlagRejectsUnknownLiteral(t *testing.T) {
	command := &cobra.Command{Use: "boolean-test"}
	var flagValue bool
	registerBooleanFlag(command.Flags(), &flagValue, "feature", "", false, "toggle feature behaviour")
	if parseErr := command.ParseFlags([]string{"--feature=maybe"}); parseErr == nil {
		t.Fatalf("expected parse error for unknown literal")
	}
}

func TestNormalizeBooleanFlagArgumentsSkipsPlainBoolFlags(t *testing.T) {
	command := &cobra.Command{Use: "boolean-test"}
	var plain bool
	command.Flags().BoolVar(&plain, "force", false, "plain flag")
	arguments := []string{"--force", "yes"}
	if diff := cmp.Diff(arguments, normalizeBooleanFlagArguments(command, arguments)); diff != "" {
		t.Fatalf("plain boolean flags must be left alone (-want +got):\n%s", diff)
	}
}
