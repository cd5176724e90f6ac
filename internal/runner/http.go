package runner

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"bot_executor/internal/models"
	"bot_executor/pkg/logger"
)

type cycleResponse struct {
	Success bool                   `json:"success"`
	CycleAt time.Time              `json:"cycleAt"`
	Error   string                 `json:"error,omitempty"`
	Summary map[models.Outcome]int `json:"summary,omitempty"`
	Actions []models.ActionResult  `json:"actions"`
}

// HandleTrigger: ручной запуск цикла (cron, оператор).
func (s *Scheduler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	// GET не запускает цикл: ссылку могут открыть краулеры и превью
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// обрыв соединения не должен прерывать уже начатый цикл
	ctx := context.WithoutCancel(r.Context())

	resp := cycleResponse{CycleAt: time.Now().UTC(), Actions: []models.ActionResult{}}
	status := http.StatusOK

	results, err := s.RunOnce(ctx)
	switch {
	case errors.Is(err, ErrCycleInProgress):
		status = http.StatusConflict
		resp.Error = err.Error()
	case err != nil:
		status = http.StatusInternalServerError
		resp.Error = err.Error()
	default:
		resp.Success = true
		resp.Summary = models.Summary(results)
		if results != nil {
			resp.Actions = results
		}
	}

	body, mErr := sonic.Marshal(resp)
	if mErr != nil {
		http.Error(w, mErr.Error(), http.StatusInternalServerError)
		return
	}
	if status != http.StatusOK {
		logger.Warn("cycle trigger: %d %s", status, resp.Error)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
