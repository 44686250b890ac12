/*
Copyright © 2025 mk3s
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hcrm/internal/config"
	"hcrm/internal/logger"
	"hcrm/internal/pipeline"
)

var renderLogger = logger.PackageLogger("RENDER", "🎨 RENDER")

var (
	renderMode     string
	renderOut      string
	renderSVGOut   string
	renderConfig   string
	renderFeedback bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the status card and write it as a PNG file",
	Long: `Render samples CPU/RAM, fetches a quote and renders the status card.

The backend defaults to the configured render_mode and can be overridden
per invocation:

  # headless-browser screenshot
  hcrm render --mode dom -o card.png

  # in-process vector rasterization, with the SVG scene kept alongside
  hcrm render --mode vector -o card.png --svg-out card.svg

  # no image, just a text summary
  hcrm render --feedback

Configuration:
  Create a 'hcrm.yml' file to customize behavior:

  render_mode: dom            # default backend
  background_image: ""        # override the bundled background
  font_zcool: ""              # override a bundled font
  hitokoto_types: ["a", "k"]  # quote categories
  footer: "Powered By 狼狼"
`,
	RunE: runRenderCommand,
}

func runRenderCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(renderConfig)
	if err != nil {
		return err
	}

	resp, err := pipeline.Generate(cmd.Context(), pipeline.Request{
		ModeOverride: renderMode,
		FeedbackOnly: renderFeedback,
		WantSVG:      renderSVGOut != "",
		Config:       cfg,
	})
	if err != nil {
		return err
	}

	if resp.Feedback != "" {
		fmt.Println(resp.Feedback)
		return nil
	}

	if err := os.WriteFile(renderOut, resp.Image, 0644); err != nil {
		return fmt.Errorf("write %s: %w", renderOut, err)
	}
	renderLogger.Success("Card written to %s", renderOut)

	if len(resp.SVG) > 0 {
		if err := os.WriteFile(renderSVGOut, resp.SVG, 0644); err != nil {
			return fmt.Errorf("write %s: %w", renderSVGOut, err)
		}
		renderLogger.Success("Vector scene written to %s", renderSVGOut)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderMode, "mode", "m", "", "render backend: dom or vector (default: configured)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "card.png", "output PNG path")
	renderCmd.Flags().StringVar(&renderSVGOut, "svg-out", "", "also write the vector scene as SVG (vector mode)")
	renderCmd.Flags().StringVarP(&renderConfig, "config", "c", "", "config file (default: hcrm.yml)")
	renderCmd.Flags().BoolVar(&renderFeedback, "feedback", false, "print a text summary instead of rendering")
}
