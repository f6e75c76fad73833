package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/warpsim/internal/config"
	"github.com/san-kum/warpsim/internal/metric"
	"github.com/san-kum/warpsim/internal/storage"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func getJSON(url string, v any) int {
	resp, err := http.Get(url)
	Expect(err).NotTo(HaveOccurred())
	defer resp.Body.Close()
	if v != nil {
		Expect(json.NewDecoder(resp.Body).Decode(v)).To(Succeed())
	}
	return resp.StatusCode
}

var _ = Describe("HTTP API", func() {
	var (
		ts    *httptest.Server
		store *storage.Store
	)

	BeforeEach(func() {
		var err error
		store, err = storage.Open(GinkgoT().TempDir(), quietLogger())
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(store.Close)

		ts = httptest.NewServer(New(config.DefaultConfig(), store, quietLogger()).Handler())
		DeferCleanup(ts.Close)
	})

	Describe("GET /api/sample", func() {
		It("defaults to a 2D time sample", func() {
			var f Frame
			Expect(getJSON(ts.URL+"/api/sample", &f)).To(Equal(http.StatusOK))
			Expect(f.Mode).To(Equal(metric.Time))
			Expect(f.Points).To(HaveLen(21))
			Expect(f.Points[10]).To(Equal(metric.Record2D{X: 0, Y: "0.00"}))
			Expect(f.Energy).To(BeNil())
		})

		It("applies query parameters", func() {
			var f Frame
			Expect(getJSON(ts.URL+"/api/sample?mode=time&t=5", &f)).To(Equal(http.StatusOK))
			Expect(f.Points[0]).To(Equal(metric.Record2D{X: -10, Y: "22.50"}))
		})

		It("returns 121 samples for the 3D view", func() {
			var f Frame
			Expect(getJSON(ts.URL+"/api/sample?mode=warp&view=3d&w=0.3", &f)).To(Equal(http.StatusOK))
			Expect(f.Samples).To(HaveLen(121))
			Expect(f.Points).To(BeEmpty())
			Expect(f.Energy).NotTo(BeNil())
		})

		It("clamps out of range values", func() {
			var f Frame
			Expect(getJSON(ts.URL+"/api/sample?T=42&rot=370", &f)).To(Equal(http.StatusOK))
			Expect(f.Params.Tensor).To(Equal(10.0))
			Expect(f.Params.RotationDeg).To(Equal(10.0))
		})

		DescribeTable("rejects bad input",
			func(query string) {
				Expect(getJSON(ts.URL+"/api/sample?"+query, nil)).To(Equal(http.StatusBadRequest))
			},
			Entry("unknown mode", "mode=gravity"),
			Entry("unknown view", "view=4d"),
			Entry("not a number", "t=abc"),
			Entry("NaN", "lambda=NaN"),
			Entry("infinity", "w=Inf"),
		)
	})

	Describe("GET /api/warp", func() {
		It("evaluates the warp metric", func() {
			var res metric.WarpResult
			Expect(getJSON(ts.URL+"/api/warp?x=5&w=0.5", &res)).To(Equal(http.StatusOK))
			Expect(res.Shape).To(BeNumerically("~", 1, 1e-12))
			Expect(res.EnergyDensity).To(BeNumerically("~", -0.5/(8*math.Pi), 1e-12))
		})

		It("rejects bad coordinates", func() {
			Expect(getJSON(ts.URL+"/api/warp?x=oops", nil)).To(Equal(http.StatusBadRequest))
		})
	})

	It("lists the slider ranges", func() {
		var ranges []config.Range
		Expect(getJSON(ts.URL+"/api/ranges", &ranges)).To(Equal(http.StatusOK))
		Expect(ranges).To(Equal(config.Ranges))
	})

	Describe("snapshots", func() {
		It("lists and loads stored snapshots", func() {
			var empty []storage.Snapshot
			Expect(getJSON(ts.URL+"/api/snapshots", &empty)).To(Equal(http.StatusOK))
			Expect(empty).To(BeEmpty())

			saved, err := store.Save(context.Background(), storage.Snapshot{
				Mode: metric.Tensor, View: metric.View2D, Params: metric.Params{Tensor: 2},
			})
			Expect(err).NotTo(HaveOccurred())

			var snaps []storage.Snapshot
			Expect(getJSON(ts.URL+"/api/snapshots", &snaps)).To(Equal(http.StatusOK))
			Expect(snaps).To(HaveLen(1))

			var f Frame
			Expect(getJSON(ts.URL+"/api/snapshots/"+saved.ID, &f)).To(Equal(http.StatusOK))
			Expect(f.Mode).To(Equal(metric.Tensor))
			Expect(f.Points).To(Equal(metric.Records2D(metric.Sample2D(metric.Tensor, saved.Params, metric.Domain2D))))
		})

		It("answers 404 for unknown snapshots", func() {
			Expect(getJSON(ts.URL+"/api/snapshots/nope", nil)).To(Equal(http.StatusNotFound))
		})
	})
})

var _ = Describe("websocket sessions", func() {
	var conn *websocket.Conn

	BeforeEach(func() {
		cfg := config.DefaultConfig()
		cfg.FPS = 200
		ts := httptest.NewServer(New(cfg, nil, quietLogger()).Handler())
		DeferCleanup(ts.Close)

		var err error
		conn, _, err = websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(conn.Close)
	})

	readFrame := func() Frame {
		var f Frame
		Expect(conn.SetReadDeadline(time.Now().Add(5 * time.Second))).To(Succeed())
		Expect(conn.ReadJSON(&f)).To(Succeed())
		return f
	}

	It("replies with a frame for each request", func() {
		Expect(conn.WriteJSON(map[string]any{
			"mode":   "warp",
			"view":   "3d",
			"params": map[string]any{"warpStrength": 0.3},
		})).To(Succeed())

		f := readFrame()
		Expect(f.Mode).To(Equal(metric.Warp))
		Expect(f.Samples).To(HaveLen(121))
		Expect(f.Params.WarpStrength).To(Equal(0.3))
	})

	It("clamps request parameters", func() {
		Expect(conn.WriteJSON(map[string]any{
			"mode":   "time",
			"params": map[string]any{"time": 50, "rotationAngleDegrees": -90},
		})).To(Succeed())

		f := readFrame()
		Expect(f.Params.Time).To(Equal(10.0))
		Expect(f.Params.RotationDeg).To(Equal(270.0))
	})

	It("advances the rotation while animating", func() {
		Expect(conn.WriteJSON(map[string]any{"mode": "tensor", "view": "3d", "animate": true})).To(Succeed())

		first := readFrame()
		Expect(first.Params.RotationDeg).To(Equal(0.0))
		second := readFrame()
		Expect(second.Params.RotationDeg).To(BeNumerically(">", 0))
	})

	It("reports malformed requests without closing", func() {
		Expect(conn.WriteMessage(websocket.TextMessage, []byte(`{"mode":"gravity"}`))).To(Succeed())
		Expect(readFrame().Error).NotTo(BeEmpty())

		Expect(conn.WriteJSON(map[string]any{"mode": "time"})).To(Succeed())
		f := readFrame()
		Expect(f.Error).To(BeEmpty())
		Expect(f.Points).To(HaveLen(21))
	})
})

var _ = Describe("Serve", func() {
	It("shuts down when the context is cancelled", func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).NotTo(HaveOccurred())

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- New(nil, nil, quietLogger()).Serve(ctx, ln) }()

		Eventually(func() int {
			resp, err := http.Get("http://" + ln.Addr().String() + "/api/ranges")
			if err != nil {
				return 0
			}
			resp.Body.Close()
			return resp.StatusCode
		}).Should(Equal(http.StatusOK))

		cancel()
		Eventually(errCh, 5*time.Second).Should(Receive(BeNil()))
	})
})
