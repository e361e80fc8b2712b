package layout_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jgae23/EEG-ECG-Multichannel/internal/classify"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/layout"
	"github.com/jgae23/EEG-ECG-Multichannel/internal/recording"
)

func channel(name string, cat classify.Category) recording.Channel {
	return recording.Channel{
		Name:     name,
		Unit:     classify.UnitFor(name, cat),
		Category: cat,
		Samples:  []float64{0, 1},
	}
}

var _ = Describe("Build", func() {
	var rec *recording.Recording

	BeforeEach(func() {
		rec = &recording.Recording{
			Path:       "rec.csv",
			SampleRate: 200,
			Time:       []float64{0, 0.005},
			Channels: []recording.Channel{
				channel("Fp1", classify.EEG),
				channel("X1_LEOG", classify.ECG),
				channel("CM", classify.Reference),
				channel("Fp2", classify.EEG),
			},
		}
	})

	It("assigns one row per channel at the fixed height", func() {
		plan := layout.Build(rec, layout.Options{})
		Expect(plan.Rows).To(HaveLen(len(rec.Channels)))
		for _, row := range plan.Rows {
			Expect(row.HeightPx).To(Equal(layout.DefaultRowHeight))
		}
		Expect(plan.TotalHeight).To(Equal(layout.DefaultRowHeight * len(rec.Channels)))
		Expect(plan.FigureHeight()).To(Equal(plan.TotalHeight + layout.ChromeHeight))
	})

	It("tags every row with the shared axis group", func() {
		plan := layout.Build(rec, layout.Options{})
		Expect(plan.AxisGroup).To(Equal(layout.SharedAxisGroup))
		for _, row := range plan.Rows {
			Expect(row.AxisGroup).To(Equal(layout.SharedAxisGroup))
		}
	})

	It("preserves header order by default", func() {
		plan := layout.Build(rec, layout.Options{})
		names := make([]string, len(plan.Rows))
		for i, row := range plan.Rows {
			names[i] = row.Channel
		}
		Expect(names).To(Equal([]string{"Fp1", "X1_LEOG", "CM", "Fp2"}))
	})

	It("orders EEG, ECG, Reference when requested", func() {
		plan := layout.Build(rec, layout.Options{ByCategory: true})
		names := make([]string, len(plan.Rows))
		for i, row := range plan.Rows {
			names[i] = row.Channel
		}
		Expect(names).To(Equal([]string{"Fp1", "Fp2", "X1_LEOG", "CM"}))
	})

	It("caps the row count", func() {
		plan := layout.Build(rec, layout.Options{MaxRows: 2})
		Expect(plan.Rows).To(HaveLen(2))
		Expect(plan.TotalHeight).To(Equal(2 * layout.DefaultRowHeight))
	})

	It("honors a custom row height", func() {
		plan := layout.Build(rec, layout.Options{RowHeight: 100})
		for _, row := range plan.Rows {
			Expect(row.HeightPx).To(Equal(100))
		}
		Expect(plan.TotalHeight).To(Equal(400))
	})

	It("builds category-qualified labels", func() {
		plan := layout.Build(rec, layout.Options{})
		Expect(plan.Rows[0].Label).To(Equal("Fp1 (µV) - EEG"))
		Expect(plan.Rows[1].Label).To(Equal("X1_LEOG (mV) - ECG"))
		Expect(plan.Rows[2].Label).To(Equal("CM (Reference)"))
	})

	It("handles an empty channel set", func() {
		rec.Channels = nil
		plan := layout.Build(rec, layout.Options{})
		Expect(plan.Rows).To(BeEmpty())
		Expect(plan.TotalHeight).To(BeZero())
	})
})
