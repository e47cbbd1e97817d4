package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/fastvideo-cli/fastvideo/color"
	"github.com/fastvideo-cli/fastvideo/key"
	"github.com/fastvideo-cli/fastvideo/session"
	"github.com/fastvideo-cli/fastvideo/style"
	"github.com/fastvideo-cli/fastvideo/watermark"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// resolution is what `watermark resolve` prints.
type resolution struct {
	Input     watermark.Input  `json:"input"`
	Letterbox watermark.Rect   `json:"letterbox"`
	Anchor    watermark.Anchor `json:"anchor"`
}

func init() {
	rootCmd.AddCommand(watermarkCmd)
}

// watermarkCmd groups tools around watermark placement.
var watermarkCmd = &cobra.Command{
	Use:   "watermark",
	Short: "Inspect where the watermark is drawn",
}

func init() {
	watermarkCmd.AddCommand(watermarkResolveCmd)

	watermarkResolveCmd.Flags().StringP("position", "p", "", "Watermark position, defaults to the configured one")
	_ = watermarkResolveCmd.RegisterFlagCompletionFunc("position", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return watermark.Positions(), cobra.ShellCompDirectiveNoFileComp
	})
	watermarkResolveCmd.Flags().BoolP("fullscreen", "f", false, "Resolve for the fullscreen surface")
	watermarkResolveCmd.Flags().BoolP("landscape", "l", false, "The device is landscape")
	watermarkResolveCmd.Flags().String("viewport", "800x800", "Viewport size as WxH")
	watermarkResolveCmd.Flags().String("natural", "", "Natural video size as WxH, unknown when empty")
	watermarkResolveCmd.Flags().BoolP("json", "j", false, "Print the resolution as JSON")

	watermarkResolveCmd.SetOut(os.Stdout)
}

// watermarkResolveCmd runs the placement resolver on the configured offsets.
var watermarkResolveCmd = &cobra.Command{
	Use:     "resolve",
	Short:   "Compute the watermark anchor for a surface",
	Example: "  fastvideo watermark resolve --fullscreen --natural 1920x1080 --viewport 800x800",
	Run: func(cmd *cobra.Command, args []string) {
		name := lo.Must(cmd.Flags().GetString("position"))
		if name == "" {
			name = viper.GetString(key.WatermarkPosition)
		}

		position, err := watermark.ParsePosition(name)
		handleErr(err)

		vw, vh, ok := session.ParseGeometry(lo.Must(cmd.Flags().GetString("viewport")))
		if !ok {
			handleErr(fmt.Errorf("invalid viewport size"))
		}

		var natural watermark.NaturalSize
		if size := lo.Must(cmd.Flags().GetString("natural")); size != "" {
			w, h, ok := session.ParseGeometry(size)
			if !ok {
				handleErr(fmt.Errorf("invalid natural size %q", size))
			}
			natural = watermark.NaturalSize{Width: w, Height: h}
		}

		landscape := lo.Must(cmd.Flags().GetBool("landscape"))
		letterbox := watermark.Letterbox(natural, vw, vh, landscape)

		in := watermark.Input{
			Position: position,
			Offsets: watermark.Offsets{
				Top:    viper.GetFloat64(key.WatermarkOffsetTop),
				Left:   viper.GetFloat64(key.WatermarkOffsetLeft),
				Right:  viper.GetFloat64(key.WatermarkOffsetRight),
				Bottom: viper.GetFloat64(key.WatermarkOffsetBottom),
			},
			Fullscreen:      lo.Must(cmd.Flags().GetBool("fullscreen")),
			Landscape:       landscape,
			ViewportHeight:  vh,
			LetterboxHeight: letterbox.Height,
		}

		out := resolution{Input: in, Letterbox: letterbox, Anchor: watermark.Resolve(in)}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(out))
			return
		}

		label := style.Fg(color.Purple)
		cmd.Printf("%s %s\n", label("position "), style.Bold(position.String()))
		cmd.Printf("%s %gx%g\n", label("letterbox"), out.Letterbox.Width, out.Letterbox.Height)
		cmd.Printf("%s %s %g\n", label("vertical "), out.Anchor.Vertical, out.Anchor.Y)
		cmd.Printf("%s %s %g\n", label("horizont."), out.Anchor.Horizontal, out.Anchor.X)
		cmd.Printf("%s %g\n", label("padding  "), out.Anchor.Padding)
	},
}

func init() {
	watermarkCmd.AddCommand(watermarkSchemaCmd)
	watermarkSchemaCmd.Flags().BoolP("input", "i", false, "Generate the schema of the resolver input instead")
}

// watermarkSchemaCmd prints the JSON schema of `watermark resolve --json`.
var watermarkSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the resolver output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return "watermark." + t.Name()
		}

		var schema *jsonschema.Schema
		if lo.Must(cmd.Flags().GetBool("input")) {
			schema = reflector.Reflect(&watermark.Input{})
		} else {
			schema = reflector.Reflect(&resolution{})
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}

func init() {
	watermarkCmd.AddCommand(watermarkPositionsCmd)
	watermarkPositionsCmd.SetOut(os.Stdout)
}

var watermarkPositionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "List the available watermark positions",
	Run: func(cmd *cobra.Command, args []string) {
		for _, p := range watermark.Positions() {
			cmd.Println(p)
		}
	},
}
