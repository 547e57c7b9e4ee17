package widget

import (
	"context"
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sandeepkv93/deadlinetodo/internal/stats"
)

type Server struct {
	hub          *Hub
	heatmapWeeks int
	now          func() time.Time
	logger       *zap.Logger
	router       *gin.Engine
}

func NewServer(hub *Hub, heatmapWeeks int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{hub: hub, heatmapWeeks: heatmapWeeks, now: time.Now, logger: logger}
	r := gin.New()
	r.Use(recoverWithLog(logger), requestLog(logger))
	r.GET("/healthz", s.health)
	r.GET("/api/widget", s.widget)
	r.GET("/api/stats/:period", s.stats)
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("widget server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) widget(c *gin.Context) {
	snap := s.hub.Snapshot()
	if snap.Generation == 0 {
		var err error
		if snap, err = s.hub.Reload(c.Request.Context()); err != nil {
			s.logger.Error("widget snapshot failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "snapshot unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) stats(c *gin.Context) {
	period, err := stats.ParsePeriod(c.Param("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tasks, err := s.hub.Tasks(c.Request.Context())
	if err != nil {
		s.logger.Error("stats load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, toReportJSON(stats.Build(tasks, period, s.now(), s.heatmapWeeks)))
}

type seriesJSON struct {
	Family string    `json:"family"`
	Unit   string    `json:"unit"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type heatCellJSON struct {
	Date  string  `json:"date"`
	Count int     `json:"count"`
	Level float64 `json:"level"`
}

type reportJSON struct {
	Period      string         `json:"period"`
	GeneratedAt time.Time      `json:"generated_at"`
	WeeklyScore int            `json:"weekly_score"`
	Completed   int            `json:"completed"`
	Series      []seriesJSON   `json:"series"`
	HeatMap     []heatCellJSON `json:"heatmap"`
}

func toReportJSON(r stats.Report) reportJSON {
	out := reportJSON{
		Period:      string(r.Period),
		GeneratedAt: r.GeneratedAt,
		WeeklyScore: r.WeeklyScore,
		Completed:   r.Completed,
	}
	for _, s := range []stats.Series{r.Efficiency, r.WorkingTime, r.TimeDifference} {
		out.Series = append(out.Series, seriesJSON{Family: string(s.Family), Unit: string(s.Unit), Labels: s.Labels, Values: s.Values})
	}
	out.HeatMap = make([]heatCellJSON, 0, len(r.HeatMap.Cells))
	for _, cell := range r.HeatMap.Cells {
		out.HeatMap = append(out.HeatMap, heatCellJSON{Date: cell.Date.Format(time.DateOnly), Count: cell.Count, Level: cell.Level})
	}
	return out
}

func recoverWithLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered", zap.Any("panic", err), zap.ByteString("stack", debug.Stack()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}
		}()
		c.Next()
	}
}

func requestLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
