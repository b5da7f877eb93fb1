package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/notargets/exodeck/config"
	"github.com/notargets/exodeck/convert"
	"github.com/notargets/exodeck/deck"
	"github.com/notargets/exodeck/exodus"
	"github.com/notargets/exodeck/session"
)

// ConvertOptions collects the convert command's flag values
type ConvertOptions struct {
	ExoFile  string
	MetaFile string
	OutFile  string
	External bool
}

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Assemble a solver input deck from an exchange file and session metadata",
	Long: `
Assembles a 4C input deck from a pre-exported mesh-exchange file and a YAML
metadata file describing the session's element blocks and node sets. By
default the full mesh is embedded in the deck; with --external the deck
references the exchange file instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		opts := &ConvertOptions{}
		if opts.ExoFile, err = cmd.Flags().GetString("exoFile"); err != nil {
			panic(err)
		}
		if opts.MetaFile, err = cmd.Flags().GetString("metaFile"); err != nil {
			panic(err)
		}
		opts.OutFile, _ = cmd.Flags().GetString("outFile")
		opts.External, _ = cmd.Flags().GetBool("external")
		checkConvertInput(opts)

		if prof, _ := cmd.Flags().GetBool("profile"); prof {
			defer profile.Start(profile.ProfilePath(".")).Stop()
		}

		if err = RunConvert(opts); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func checkConvertInput(opts *ConvertOptions) {
	var willExit bool
	if len(opts.ExoFile) == 0 {
		fmt.Println("must supply an exchange file (-e, --exoFile)")
		willExit = true
	}
	if len(opts.MetaFile) == 0 {
		fmt.Println("must supply a session metadata file (-m, --metaFile)")
		exampleFile := `
########################################
blocks:
  1:
    element: HEX8
    data: {MAT: 1, KINEM: nonlinear}
nodesets:
  1:
    geometry: surface
    section: DESIGN SURF DIRICH CONDITIONS
    condition: {NUMDOF: 3, ONOFF: [1, 1, 1]}
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
}

// RunConvert executes one conversion
func RunConvert(opts *ConvertOptions) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	meta, err := session.LoadMeta(opts.MetaFile)
	if err != nil {
		return err
	}
	sess, err := meta.Session(opts.ExoFile)
	if err != nil {
		return err
	}
	logger.Info("session metadata loaded",
		zap.String("metaFile", opts.MetaFile),
		zap.Int("blocks", len(sess.Blocks())),
		zap.Int("nodeSets", len(sess.NodeSets())))

	cfg := config.FromViper(viper.GetViper())

	var d *deck.Deck
	if opts.External {
		d, err = buildExternalDeck(sess, opts, cfg)
	} else {
		d, err = buildEmbeddedDeck(sess, opts.ExoFile)
	}
	if err != nil {
		return err
	}

	out, err := d.YAML()
	if err != nil {
		return err
	}
	logger.Info("deck assembled",
		zap.Int("sections", d.Len()),
		zap.Bool("external", opts.External))

	if opts.OutFile == "" || opts.OutFile == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(opts.OutFile, out, 0o644)
}

func buildEmbeddedDeck(sess session.Session, exoFile string) (*deck.Deck, error) {
	f, err := exodus.Open(exoFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return convert.BuildDeckFromExodus(sess, f)
}

func buildExternalDeck(sess session.Session, opts *ConvertOptions, cfg *config.Config) (*deck.Deck, error) {
	// The FILE reference is resolved relative to the deck's own location
	base := "."
	if opts.OutFile != "" && opts.OutFile != "-" {
		base = filepath.Dir(opts.OutFile)
	}
	rel, err := filepath.Rel(base, opts.ExoFile)
	if err != nil {
		rel = opts.ExoFile
	}

	d := sess.BaseDeck().Copy()
	if err := convert.AddExternalNodeSets(sess, d); err != nil {
		return nil, err
	}
	if err := convert.AddExternalGeometry(sess, d, rel, cfg.ShowInfo); err != nil {
		return nil, err
	}
	return d, nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("exoFile", "e", "", "mesh-exchange file exported by the meshing engine")
	convertCmd.Flags().StringP("metaFile", "m", "", "YAML file describing blocks and node sets, see convert --help")
	convertCmd.Flags().StringP("outFile", "o", "", "output deck file, stdout when omitted")
	convertCmd.Flags().Bool("external", false, "reference the exchange file instead of embedding the mesh")
}
