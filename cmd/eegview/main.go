package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/annotations"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/config"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/export"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/layout"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/server"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/viz"
)

var (
	dataDir    string
	configFile string
	// Layout overrides
	rowHeight   int
	maxChannels int
	byCategory  bool
	// Viewer
	themeName string
	// Serve
	addr string
	// Plot window
	fromSec  float64
	toSec    float64
	channels []string
	plotW    int
	plotH    int
	// SVG export
	outPath  string
	svgWidth int
	// Mark
	markFrom float64
	markTo   float64
	markNote string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "eegview [file]",
		Short: "multichannel EEG/ECG data explorer",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".eegview", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().IntVar(&rowHeight, "row-height", 0, "subplot height in px (default 150)")
	rootCmd.PersistentFlags().IntVar(&maxChannels, "max-channels", 0, "max channels to lay out (default 30)")
	rootCmd.PersistentFlags().BoolVar(&byCategory, "by-category", false, "order rows EEG, ECG, Reference")

	viewCmd := &cobra.Command{
		Use:   "view [file]",
		Short: "open interactive terminal viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}
	viewCmd.Flags().StringVar(&themeName, "theme", "", "viewer theme")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "viewer theme")

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "print recording summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	layoutCmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "print computed layout plan",
		Args:  cobra.ExactArgs(1),
		RunE:  runLayout,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [file]",
		Short: "plot channels in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().Float64Var(&fromSec, "from", 0, "window start (seconds)")
	plotCmd.Flags().Float64Var(&toSec, "to", 0, "window end (seconds, 0 = end of file)")
	plotCmd.Flags().StringSliceVar(&channels, "channels", nil, "channel names to plot (default: all planned)")
	plotCmd.Flags().IntVar(&plotW, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotH, "height", 8, "plot height per channel")

	serveCmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "serve interactive browser session",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [file]",
		Short: "export stacked layout to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default: input with .svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 0, "figure width in px")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [file]",
		Short: "export recording to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [file]",
		Short: "export normalized recording to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}

	markCmd := &cobra.Command{
		Use:   "mark [file]",
		Short: "mark a time window",
		Args:  cobra.ExactArgs(1),
		RunE:  runMark,
	}
	markCmd.Flags().Float64Var(&markFrom, "from", 0, "window start (seconds)")
	markCmd.Flags().Float64Var(&markTo, "to", 0, "window end (seconds)")
	markCmd.Flags().StringVar(&markNote, "note", "", "annotation note")

	marksCmd := &cobra.Command{
		Use:   "marks [file]",
		Short: "list marked windows",
		Args:  cobra.ExactArgs(1),
		RunE:  runMarks,
	}

	unmarkCmd := &cobra.Command{
		Use:   "unmark [id]",
		Short: "remove a marked window",
		Args:  cobra.ExactArgs(1),
		RunE:  runUnmark,
	}

	rootCmd.AddCommand(viewCmd, infoCmd, layoutCmd, plotCmd, serveCmd, exportSVGCmd, exportJSONCmd, exportCSVCmd, markCmd, marksCmd, unmarkCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	// CLI flags override config
	if rowHeight > 0 {
		cfg.RowHeight = rowHeight
	}
	if maxChannels > 0 {
		cfg.MaxChannels = maxChannels
	}
	if byCategory {
		cfg.ByCategory = true
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if addr != "" {
		cfg.ListenAddr = addr
	}
	return cfg, nil
}

func loadRecording(path string, cfg *config.Config) (*recording.Recording, *layout.Plan, error) {
	rec, err := recording.Load(path)
	if err != nil {
		return nil, nil, err
	}
	rec.ApplyFallbackRate(cfg.SampleRate)
	return rec, layout.Build(rec, cfg.LayoutOptions()), nil
}

func openStore() (*annotations.Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return annotations.Open(filepath.Join(dataDir, "annotations.db"))
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, plan, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		// The viewer works without annotations, marking is just disabled.
		fmt.Fprintf(os.Stderr, "annotations unavailable: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return viz.Run(rec, plan, store, cfg.Theme)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, plan, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}

	fmt.Printf("file: %s\n", rec.Path)
	fmt.Printf("sample rate: %.0f Hz\n", rec.SampleRate)
	fmt.Printf("samples: %d\n", rec.SampleCount())
	fmt.Printf("duration: %.2fs\n", rec.Duration())
	fmt.Printf("channels: %d (%d planned)\n\n", len(rec.Channels), len(plan.Rows))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tUNIT\tCATEGORY\tMIN\tMAX")
	for _, ch := range rec.Channels {
		min, max := sampleBounds(ch.Samples)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\n", ch.Name, ch.Unit, ch.Category, min, max)
	}
	return w.Flush()
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, plan, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}

	fmt.Printf("file: %s\n", rec.Path)
	fmt.Printf("figure height: %dpx (%d rows x %dpx + %dpx chrome)\n\n",
		plan.FigureHeight(), len(plan.Rows), plan.RowHeight, layout.ChromeHeight)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tLABEL\tHEIGHT\tAXIS")
	for i, row := range plan.Rows {
		fmt.Fprintf(w, "%d\t%s\t%dpx\t%s\n", i+1, row.Label, row.HeightPx, row.AxisGroup)
	}
	return w.Flush()
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, plan, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}
	if rec.SampleCount() == 0 {
		return fmt.Errorf("no data to plot")
	}

	t0, t1 := rec.Time[0], rec.Time[len(rec.Time)-1]
	if cmd.Flags().Changed("from") {
		t0 = fromSec
	}
	if toSec > 0 {
		t1 = toSec
	}

	want := map[string]bool{}
	for _, name := range channels {
		want[name] = true
	}

	for _, row := range plan.Rows {
		if len(want) > 0 && !want[row.Channel] {
			continue
		}
		ch, ok := rec.Channel(row.Channel)
		if !ok {
			continue
		}
		data := windowSamples(rec.Time, ch.Samples, t0, t1)
		if len(data) < 2 {
			fmt.Printf("%s: no samples in window\n\n", row.Label)
			continue
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(plotH),
			asciigraph.Width(plotW),
			asciigraph.Caption(row.Label),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, plan, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}
	return server.NewServer(rec, plan, cfg.ListenAddr).Start()
}

func runExportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, plan, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}

	width := cfg.ExportWidth
	if svgWidth > 0 {
		width = svgWidth
	}
	out := outPath
	if out == "" {
		out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".svg"
	}

	svg := export.RecordingToSVG(rec, plan, width)
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d rows, %dx%dpx)\n", out, len(plan.Rows), width, plan.FigureHeight())
	return nil
}

func runExportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, _, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}

	type channelOut struct {
		Name     string    `json:"name"`
		Unit     string    `json:"unit"`
		Category string    `json:"category"`
		Samples  []float64 `json:"samples"`
	}
	out := struct {
		Path       string       `json:"path"`
		SampleRate float64      `json:"sample_rate"`
		Time       []float64    `json:"time"`
		Channels   []channelOut `json:"channels"`
	}{
		Path:       rec.Path,
		SampleRate: rec.SampleRate,
		Time:       rec.Time,
	}
	for _, ch := range rec.Channels {
		out.Channels = append(out.Channels, channelOut{
			Name:     ch.Name,
			Unit:     string(ch.Unit),
			Category: ch.Category.String(),
			Samples:  ch.Samples,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, _, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"Time"}
	header = append(header, rec.ChannelNames()...)
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range rec.Time {
		row := []string{strconv.FormatFloat(rec.Time[i], 'f', 6, 64)}
		for _, ch := range rec.Channels {
			row = append(row, strconv.FormatFloat(ch.Samples[i], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runMark(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rec, _, err := loadRecording(args[0], cfg)
	if err != nil {
		return err
	}

	from, to, err := markWindow(rec, markFrom, markTo,
		cmd.Flags().Changed("from"), cmd.Flags().Changed("to"))
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	win, err := store.Mark(rec.Path, from, to, markNote)
	if err != nil {
		return err
	}
	fmt.Printf("marked %.2f–%.2fs on %s (id %s)\n", win.StartSec, win.EndSec, rec.Path, win.ID)
	return nil
}

// markWindow resolves the window to mark: flags when given, otherwise the
// recording's absolute time bounds, so a time axis starting past zero still
// defaults to the actual data range.
func markWindow(rec *recording.Recording, from, to float64, fromSet, toSet bool) (float64, float64, error) {
	if rec.SampleCount() == 0 {
		return 0, 0, fmt.Errorf("no data to mark")
	}
	if !fromSet {
		from = rec.Time[0]
	}
	if !toSet {
		to = rec.Time[len(rec.Time)-1]
	}
	return from, to, nil
}

func runUnmark(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("removed window %s\n", args[0])
	return nil
}

func runMarks(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	windows, err := store.List(args[0])
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		fmt.Println("no marked windows")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tEND\tNOTE\tCREATED")
	for _, win := range windows {
		fmt.Fprintf(w, "%s\t%.2fs\t%.2fs\t%s\t%s\n",
			win.ID, win.StartSec, win.EndSec, win.Note,
			win.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func sampleBounds(samples []float64) (float64, float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	min, max := samples[0], samples[0]
	for _, v := range samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func windowSamples(times, samples []float64, t0, t1 float64) []float64 {
	out := make([]float64, 0, len(samples))
	for i, t := range times {
		if t < t0 || t > t1 {
			continue
		}
		out = append(out, samples[i])
	}
	return out
}
