package storage

import (
	"context"
	"io"
	"log/slog"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/warpsim/internal/metric"
)

var _ = Describe("Store", func() {
	var (
		st  *Store
		ctx context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		st, err = Open(GinkgoT().TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(st.Close)
	})

	Describe("Save and Load", func() {
		It("stores a 2D snapshot and reloads its records", func() {
			saved, err := st.Save(ctx, Snapshot{
				Name:   "future",
				Mode:   metric.Time,
				View:   metric.View2D,
				Params: metric.Params{Time: 5},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.ID).NotTo(BeEmpty())
			Expect(saved.Points).To(Equal(21))
			Expect(saved.Size).To(BeNumerically(">", 0))

			meta, err := st.Load(ctx, saved.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.CreatedAt.Equal(saved.CreatedAt)).To(BeTrue())
			meta.CreatedAt = saved.CreatedAt
			Expect(meta).To(Equal(saved))

			_, recs, err := st.LoadRecords(ctx, saved.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(recs.View).To(Equal(metric.View2D))
			Expect(recs.Len()).To(Equal(21))
			Expect(recs.Points[0]).To(Equal(metric.Record2D{X: -10, Y: "22.50"}))
		})

		It("keeps 3D samples at full precision", func() {
			p := metric.Params{WarpStrength: 0.3, RotationDeg: 45}
			saved, err := st.Save(ctx, Snapshot{Mode: metric.Warp, View: metric.View3D, Params: p})
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Points).To(Equal(121))

			_, recs, err := st.LoadRecords(ctx, saved.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(recs.Samples).To(Equal(metric.Records3D(metric.Sample3D(metric.Warp, p, metric.Domain3D))))
		})

		It("resolves a unique id prefix", func() {
			saved, err := st.Save(ctx, Snapshot{Mode: metric.Tensor, Params: metric.Params{Tensor: 1}})
			Expect(err).NotTo(HaveOccurred())

			meta, err := st.Load(ctx, saved.ID[:8])
			Expect(err).NotTo(HaveOccurred())
			Expect(meta.ID).To(Equal(saved.ID))
		})

		It("rejects non-finite parameters", func() {
			_, err := st.Save(ctx, Snapshot{Params: metric.Params{Lambda: math.NaN()}})
			Expect(err).To(MatchError(metric.ErrNonFinite))
		})

		It("returns ErrNotFound for unknown ids", func() {
			_, err := st.Load(ctx, "does-not-exist")
			Expect(err).To(MatchError(ErrNotFound))

			_, _, err = st.LoadRecords(ctx, "")
			Expect(err).To(MatchError(ErrNotFound))
		})
	})

	Describe("List", func() {
		It("is empty for a fresh store", func() {
			snaps, err := st.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(snaps).To(BeEmpty())
		})

		It("returns every saved snapshot", func() {
			for _, m := range metric.Modes() {
				_, err := st.Save(ctx, Snapshot{Mode: m, View: metric.View2D})
				Expect(err).NotTo(HaveOccurred())
			}
			snaps, err := st.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(snaps).To(HaveLen(3))

			modes := make([]metric.Mode, 0, len(snaps))
			for _, s := range snaps {
				modes = append(modes, s.Mode)
			}
			Expect(modes).To(ConsistOf(metric.Time, metric.Tensor, metric.Warp))
		})
	})

	Describe("Delete", func() {
		It("removes the snapshot", func() {
			saved, err := st.Save(ctx, Snapshot{Mode: metric.Warp})
			Expect(err).NotTo(HaveOccurred())

			Expect(st.Delete(ctx, saved.ID)).To(Succeed())
			_, err = st.Load(ctx, saved.ID)
			Expect(err).To(MatchError(ErrNotFound))
			Expect(st.Delete(ctx, saved.ID)).To(MatchError(ErrNotFound))
		})
	})
})
