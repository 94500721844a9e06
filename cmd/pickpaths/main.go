package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"image-picker/internal/cache"
	"image-picker/internal/logging"
	"image-picker/internal/media"
	"image-picker/internal/picker"
	"image-picker/internal/pipeline"
	"image-picker/internal/startup"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// settings collects the command-line flags.
type settings struct {
	Compress bool
	Quality  int
	Base64   bool
	Video    bool
	Max      int
	Policy   string
	CacheDir string
	Pretty   bool
}

var flags settings

// videoProbe reads video dimensions; replaced in tests.
var videoProbe media.VideoProbe = media.FFprobe{}

var rootCmd = &cobra.Command{
	Use:   "pickpaths [flags] PATH...",
	Short: "Run the picker pipeline over local files",
	Long: `pickpaths copies (or compresses) the given images or videos into the picker
cache, describes them and prints the records as JSON.

Examples:
  pickpaths ~/Pictures/a.jpg ~/Pictures/b.webp
  pickpaths --compress --quality 70 --base64 photo.png
  pickpaths --video --policy best-effort clip1.mp4 clip2.mkv`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := flags
		if !cmd.Flags().Changed("pretty") {
			s.Pretty = isTerminal(os.Stdout)
		}
		return run(cmd.Context(), cmd.OutOrStdout(), s, args)
	},
}

func init() {
	rootCmd.Flags().BoolVar(&flags.Compress, "compress", false, "Re-encode images as JPEG")
	rootCmd.Flags().IntVar(&flags.Quality, "quality", 0, "JPEG quality for --compress (0 = codec default)")
	rootCmd.Flags().BoolVar(&flags.Base64, "base64", false, "Include base64 contents for images")
	rootCmd.Flags().BoolVar(&flags.Video, "video", false, "Select videos instead of images")
	rootCmd.Flags().IntVar(&flags.Max, "max", 0, "Maximum items (0 = number of paths)")
	rootCmd.Flags().StringVar(&flags.Policy, "policy", "default", "Failure policy: default, best-effort or fail-fast")
	rootCmd.Flags().StringVar(&flags.CacheDir, "cache-dir", startup.DefaultCacheDir(), "Cache directory")
	rootCmd.Flags().BoolVar(&flags.Pretty, "pretty", false, "Indent JSON output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// output mirrors the callback envelope of the HTTP bridge.
type output struct {
	Error  *string               `json:"error"`
	Photos []media.SelectedMedia `json:"photos"`
}

func run(ctx context.Context, out io.Writer, s settings, args []string) error {
	policy, err := pipeline.ParsePolicy(s.Policy)
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", arg, err)
		}
		paths = append(paths, abs)
	}

	store := cache.New(s.CacheDir)
	codec := media.StdCodec{}
	facade := picker.New(picker.Config{
		Photos: picker.StaticPicker{Paths: paths},
		Assembler: pipeline.NewAssembler(pipeline.Config{
			Copier:     store,
			Compressor: media.NewCompressor(codec, store),
			Describer:  media.NewDescriber(codec, videoProbe),
			Policy:     policy,
		}),
		Cache: store,
	})

	limit := s.Max
	if limit <= 0 {
		limit = len(paths)
	}
	opts := picker.DefaultOptions()
	opts.ImageCount = limit
	opts.VideoCount = limit
	opts.AllowPickingMultipleVideo = true
	opts.Compress = s.Compress
	opts.Quality = s.Quality
	opts.EnableBase64 = s.Base64

	var result output
	report := func(errMessage string, photos []media.SelectedMedia) {
		if errMessage != "" {
			result.Error = &errMessage
			return
		}
		result.Photos = photos
	}

	if s.Video {
		facade.OpenVideoPicker(ctx, opts, report)
	} else {
		facade.ShowPicker(ctx, opts, report)
	}
	logging.Debug("Processed %d paths into %d records", len(paths), len(result.Photos))

	enc := json.NewEncoder(out)
	if s.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if result.Error != nil {
		return errors.New(*result.Error)
	}
	return nil
}
