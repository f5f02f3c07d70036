package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yacobolo/csslint"
	"github.com/yacobolo/csslint/internal/report"
	"github.com/yacobolo/csslint/internal/rule"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		color, _ := cmd.Flags().GetBool("color")
		return writeRules(cmd.OutOrStdout(), csslint.Registry(), format, report.ShouldUseColors(color))
	},
}

func init() {
	rulesCmd.Flags().String("format", "text", "Output format: text|json|yaml")
}

// ruleInfo is the exported description of one rule
type ruleInfo struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Fixable     bool     `json:"fixable" yaml:"fixable"`
	URL         string   `json:"url" yaml:"url"`
	Messages    []string `json:"messages" yaml:"messages"`
}

func describeRules(registry *rule.Registry) []ruleInfo {
	var infos []ruleInfo
	for _, rl := range registry.Rules() {
		info := ruleInfo{
			Name:        rl.Name,
			Description: rl.Meta.Description,
			Fixable:     rl.Meta.Fixable,
			URL:         rl.Meta.URL,
		}
		for _, key := range rl.Messages.Keys() {
			info.Messages = append(info.Messages, rl.Messages[key])
		}
		infos = append(infos, info)
	}
	return infos
}

func writeRules(w io.Writer, registry *rule.Registry, format string, useColors bool) error {
	infos := describeRules(registry)

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(infos); err != nil {
			return err
		}
		return encoder.Close()
	case "", "text":
		for _, info := range infos {
			fixable := ""
			if info.Fixable {
				fixable = report.RenderStyle(report.StyleGreen, " [fixable]", useColors)
			}
			fmt.Fprintf(w, "%s%s\n", report.RenderStyle(report.StyleCyan, info.Name, useColors), fixable)
			fmt.Fprintf(w, "    %s\n", info.Description)
			fmt.Fprintf(w, "    %s\n", report.RenderStyle(report.StyleGray, info.URL, useColors))
		}
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
}
