package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"docgen/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the available colour themes",
	Long: `List the theme ids accepted by --theme and by the "theme" field of a
document. Unknown ids fall back to the default theme, and the French ids
(bleu, vert, rouge, violet, noir) are accepted as aliases.`,
	Args: cobra.NoArgs,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().Bool("json", false, "Output as JSON format")
}

// ThemeOutput is the JSON shape of a listed theme
type ThemeOutput struct {
	ID               string `json:"id"`
	Primary          string `json:"primary"`
	Secondary        string `json:"secondary"`
	Accent           string `json:"accent"`
	Background       string `json:"background"`
	HeaderBackground string `json:"header_background"`
	Default          bool   `json:"default"`
}

func runThemes(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	defaultID := theme.Resolve(appConfig().DefaultTheme).ID

	var themes []ThemeOutput
	for _, id := range theme.IDs() {
		p := theme.Resolve(id)
		themes = append(themes, ThemeOutput{
			ID:               p.ID,
			Primary:          p.Primary.Hex(),
			Secondary:        p.Secondary.Hex(),
			Accent:           p.Accent.Hex(),
			Background:       p.Background.Hex(),
			HeaderBackground: p.HeaderBackground.Hex(),
			Default:          p.ID == defaultID,
		})
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(themes)
	}

	for _, t := range themes {
		marker := ""
		if t.Default {
			marker = " (default)"
		}
		fmt.Fprintf(out, "%-8s primary %s  header %s%s\n", t.ID, t.Primary, t.HeaderBackground, marker)
	}
	return nil
}
