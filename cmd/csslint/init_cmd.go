package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csslint.yaml config file",
	Long:  `Create a .csslint.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# csslint configuration
# Docs: https://github.com/yacobolo/csslint

verbose: false

# Rule settings: a primary option, or [primary, {secondary options}].
# null or a missing entry disables the rule. Every rule accepts the
# secondary options severity (error|warning), message and disableFix.
rules:
  color-function-alias-notation: without-alpha
  declaration-block-no-redundant-longhand-properties: true
  selector-max-attribute: null
  selector-max-class: null
  selector-max-id:
    - 0
    - ignoreContextFunctionalPseudoClasses: [":not"]
  selector-max-type: null
  selector-type-no-unknown:
    - true
    - ignore: [custom-elements]

# Linting settings
lint:
  paths:
    - "**/*.css"
    - "**/*.scss"
    - "**/*.less"
  fix: false
  jobs: 0                  # 0 = GOMAXPROCS
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues-per-linter: 0 # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
