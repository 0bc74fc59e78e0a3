package cmd

import (
	"strings"

	"github.com/samsaffron/genko/internal/config"
	"github.com/spf13/cobra"
)

// enumFlagCompletion completes a flag from the accepted values of a config key.
func enumFlagCompletion(key string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return filterPrefix(config.ValidValues[key], toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// textFileCompletion limits file completion to text documents.
func textFileCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"md", "markdown", "txt"}, cobra.ShellCompDirectiveFilterFileExt
}

// filterPrefix filters a slice to items starting with prefix
func filterPrefix(items []string, prefix string) []string {
	var result []string
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			result = append(result, item)
		}
	}
	return result
}
