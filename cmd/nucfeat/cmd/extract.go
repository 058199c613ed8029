package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/histoquant/nucfeat/internal/features"
	"github.com/histoquant/nucfeat/internal/imagery"
	"github.com/histoquant/nucfeat/internal/labels"
)

var (
	extractLabelPath     string
	extractNucleusPath   string
	extractCytoplasmPath string
	extractOutPath       string
	extractPreview       int
	extractLabelBinary   bool
	extractFSDPoints     int
	extractFSDBins       int
	extractCytoWidth     int
	extractSkipMorph     bool
	extractSkipFSD       bool
	extractSkipIntensity bool
	extractSkipGradient  bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract per-nucleus features into a CSV table",
	Long: `Extract runs the full feature pipeline: it loads the labeled nucleus mask
and the intensity channel(s), computes the enabled feature groups per
object, and writes the combined table as CSV (to --out, or stdout).

The label image is grayscale with the pixel value as object ID; pass
--label-binary to run connected-component labeling on a binary mask
instead. Without --cytoplasm, cytoplasm-derived features are skipped.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractLabelPath, "label", "", "labeled nucleus mask image (required)")
	extractCmd.Flags().StringVar(&extractNucleusPath, "nucleus", "", "nucleus channel intensity image (required)")
	extractCmd.Flags().StringVar(&extractCytoplasmPath, "cytoplasm", "", "cytoplasm channel intensity image")
	extractCmd.Flags().StringVar(&extractOutPath, "out", "", "output CSV path (default stdout)")
	extractCmd.Flags().IntVar(&extractPreview, "preview", 0, "print the first N rows as a table to stdout")
	extractCmd.Flags().BoolVar(&extractLabelBinary, "label-binary", false, "treat the label image as a binary mask and label its connected components")
	extractCmd.Flags().IntVar(&extractFSDPoints, "fsd-points", 0, "boundary points resampled for Fourier descriptors (default 128)")
	extractCmd.Flags().IntVar(&extractFSDBins, "fsd-bins", 0, "frequency bins per Fourier descriptor (default 6)")
	extractCmd.Flags().IntVar(&extractCytoWidth, "cyto-width", 0, "cytoplasm ring width in pixels (default 8)")
	extractCmd.Flags().BoolVar(&extractSkipMorph, "skip-morphometry", false, "skip morphometry features")
	extractCmd.Flags().BoolVar(&extractSkipFSD, "skip-fsd", false, "skip Fourier shape descriptor features")
	extractCmd.Flags().BoolVar(&extractSkipIntensity, "skip-intensity", false, "skip intensity features")
	extractCmd.Flags().BoolVar(&extractSkipGradient, "skip-gradient", false, "skip gradient features")

	_ = extractCmd.MarkFlagRequired("label")
	_ = extractCmd.MarkFlagRequired("nucleus")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cache := imagery.NewCache()

	label, err := loadLabelImage(cache, extractLabelPath, extractLabelBinary)
	if err != nil {
		return err
	}

	nucleusImg, err := cache.Load(extractNucleusPath)
	if err != nil {
		return fmt.Errorf("loading nucleus channel %s: %w", extractNucleusPath, err)
	}
	nucleus := imagery.ToMatrix(nucleusImg)

	var cytoplasm *imagery.Matrix
	if extractCytoplasmPath != "" {
		cytoplasmImg, err := cache.Load(extractCytoplasmPath)
		if err != nil {
			return fmt.Errorf("loading cytoplasm channel %s: %w", extractCytoplasmPath, err)
		}
		cytoplasm = imagery.ToMatrix(cytoplasmImg)
	}

	opts := buildOptions()

	table, err := features.ExtractNuclearFeatures(label, nucleus, cytoplasm, opts)
	if err != nil {
		return err
	}

	if viper.GetString("log_level") == "debug" {
		log.Printf("extracted %d features for %d objects", len(table.ColumnNames()), table.RowCount())
	}

	if extractPreview > 0 {
		previewTable(table, extractPreview)
	}

	if extractOutPath != "" {
		f, err := os.Create(extractOutPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		return table.WriteCSV(f)
	}
	if extractPreview == 0 {
		return table.WriteCSV(os.Stdout)
	}
	return nil
}

// loadLabelImage decodes a labeled mask, optionally running connected
// component labeling when the on-disk mask is binary.
func loadLabelImage(cache *imagery.Cache, path string, binary bool) (*labels.LabelImage, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading label image %s: %w", path, err)
	}
	if binary {
		bounds := img.Bounds()
		return labels.FromBinary(imagery.ToForeground(img), bounds.Dx(), bounds.Dy())
	}
	return imagery.ToLabelImage(img)
}

// buildOptions resolves extraction options: defaults, then config/env values,
// then explicit flags.
func buildOptions() features.Options {
	opts := features.DefaultOptions()

	if v := viper.GetInt("fsd_points"); v > 0 {
		opts.FSDSampleCount = v
	}
	if v := viper.GetInt("fsd_bins"); v > 0 {
		opts.FSDFrequencyBins = v
	}
	if v := viper.GetInt("cyto_width"); v > 0 {
		opts.CytoplasmRingWidth = v
	}
	if viper.IsSet("morphometry") {
		opts.Morphometry = viper.GetBool("morphometry")
	}
	if viper.IsSet("fsd") {
		opts.FSD = viper.GetBool("fsd")
	}
	if viper.IsSet("intensity") {
		opts.Intensity = viper.GetBool("intensity")
	}
	if viper.IsSet("gradient") {
		opts.Gradient = viper.GetBool("gradient")
	}

	if extractFSDPoints > 0 {
		opts.FSDSampleCount = extractFSDPoints
	}
	if extractFSDBins > 0 {
		opts.FSDFrequencyBins = extractFSDBins
	}
	if extractCytoWidth > 0 {
		opts.CytoplasmRingWidth = extractCytoWidth
	}
	if extractSkipMorph {
		opts.Morphometry = false
	}
	if extractSkipFSD {
		opts.FSD = false
	}
	if extractSkipIntensity {
		opts.Intensity = false
	}
	if extractSkipGradient {
		opts.Gradient = false
	}

	return opts
}
