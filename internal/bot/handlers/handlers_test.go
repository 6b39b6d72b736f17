package handlers_test

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/handlers"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/fitness-helper/internal/bot/state"
	"github.com/vladimiradmaev/fitness-helper/internal/calories"
	"github.com/vladimiradmaev/fitness-helper/internal/config"
	"github.com/vladimiradmaev/fitness-helper/internal/database"
	"github.com/vladimiradmaev/fitness-helper/internal/repository"
	"github.com/vladimiradmaev/fitness-helper/internal/services"
)

const chatID int64 = 4242

var fixedNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.MessageConfig
	requests int
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatalf("no message was sent")
	}
	return f.sent[len(f.sent)-1].Text
}

type harness struct {
	sender  *fakeSender
	states  *state.Manager
	handler *handlers.UpdateHandler
}

func newHarness(t *testing.T) harness {
	t.Helper()
	db, err := database.Open(config.DBConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "bot.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewLogRepository(db)
	est := calories.NewDefault()
	now := func() time.Time { return fixedNow }

	deps := handlers.Dependencies{
		UserService:    services.NewUserService(userRepo),
		FoodLogSvc:     services.NewFoodLogService(logRepo, est, time.UTC).WithClock(now),
		ExerciseLogSvc: services.NewExerciseLogService(userRepo, logRepo, est, time.UTC).WithClock(now),
		ReportSvc:      services.NewReportService(logRepo, services.NewCoachServiceWithGenerators(), time.UTC).WithClock(now),
		Estimator:      est,
	}

	sender := &fakeSender{}
	states := state.NewManager()
	return harness{
		sender:  sender,
		states:  states,
		handler: handlers.NewUpdateHandler(sender, deps, states),
	}
}

func (h harness) text(t *testing.T, text string) string {
	t.Helper()
	msg := &tgbotapi.Message{
		From: &tgbotapi.User{ID: chatID, UserName: "runner"},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
	if strings.HasPrefix(text, "/") {
		length := len(text)
		if i := strings.Index(text, " "); i > 0 {
			length = i
		}
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}}
	}
	if err := h.handler.Handle(context.Background(), tgbotapi.Update{UpdateID: 1, Message: msg}); err != nil {
		t.Fatalf("handle %q: %v", text, err)
	}
	return h.sender.last(t)
}

func (h harness) press(t *testing.T, data string) string {
	t.Helper()
	query := &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: chatID},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}
	if err := h.handler.Handle(context.Background(), tgbotapi.Update{UpdateID: 2, CallbackQuery: query}); err != nil {
		t.Fatalf("press %q: %v", data, err)
	}
	return h.sender.last(t)
}

func TestStartShowsMainMenu(t *testing.T) {
	t.Parallel()
	h := newHarness(t)
	h.states.SetUserState(chatID, state.WaitingForExercise)

	reply := h.text(t, "/start")
	if !strings.Contains(reply, "Fitness Helper") {
		t.Fatalf("expected main menu, got %q", reply)
	}
	if got := h.states.GetUserState(chatID); got != state.None {
		t.Fatalf("expected state reset, got %q", got)
	}
}

func TestLogFoodFlow(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, keyboards.CallbackLogFood)
	if h.sender.requests != 1 {
		t.Fatalf("expected callback to be answered once, got %d", h.sender.requests)
	}
	if got := h.states.GetUserState(chatID); got != state.WaitingForFood {
		t.Fatalf("expected waiting for food, got %q", got)
	}

	reply := h.text(t, "banana 2")
	if !strings.Contains(reply, "213.6 kcal (estimated)") {
		t.Fatalf("unexpected confirmation %q", reply)
	}
	if got := h.states.GetUserState(chatID); got != state.None {
		t.Fatalf("expected state cleared after logging, got %q", got)
	}
}

func TestUnknownFoodAsksForCalories(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	reply := h.text(t, "/food pizza 1")
	if !strings.Contains(reply, "don't know the calories") {
		t.Fatalf("expected manual calorie prompt, got %q", reply)
	}
	if got := h.states.GetUserState(chatID); got != state.WaitingForManualCalories {
		t.Fatalf("expected waiting for calories, got %q", got)
	}

	reply = h.text(t, "lots")
	if !strings.Contains(reply, "as a number") {
		t.Fatalf("expected retry prompt, got %q", reply)
	}

	reply = h.text(t, "350 kcal")
	if !strings.Contains(reply, "350.0 kcal (manual)") {
		t.Fatalf("unexpected confirmation %q", reply)
	}
	if _, ok := h.states.GetTempData(chatID, state.KeyFoodName); ok {
		t.Fatalf("expected pending food to be cleared")
	}
}

func TestSkipCaloriesLogsZero(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.text(t, "/food spaceship")
	reply := h.press(t, keyboards.CallbackSkipCalories)
	if !strings.Contains(reply, "0.0 kcal (manual)") {
		t.Fatalf("expected zero calorie entry, got %q", reply)
	}
}

func TestLogWalkingShowsEnvironment(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, keyboards.CallbackLogExercise)
	reply := h.text(t, "walking 60")
	if !strings.Contains(reply, "5.00 km walked") || !strings.Contains(reply, "1.05 kg CO2 saved") {
		t.Fatalf("expected walking impact, got %q", reply)
	}

	reply = h.text(t, "/exercise yoga soon")
	if !strings.Contains(reply, "duration in minutes") {
		t.Fatalf("expected duration hint, got %q", reply)
	}
}

func TestProfileUpdate(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.press(t, keyboards.CallbackEditProfile)
	reply := h.text(t, "500 180 35")
	if !strings.Contains(reply, "⚠️") {
		t.Fatalf("expected validation message, got %q", reply)
	}
	if got := h.states.GetUserState(chatID); got != state.WaitingForProfile {
		t.Fatalf("expected to keep waiting for profile, got %q", got)
	}

	reply = h.text(t, "80 180 -")
	if !strings.Contains(reply, "80.0 kg") || !strings.Contains(reply, "30 (default)") {
		t.Fatalf("unexpected profile %q", reply)
	}
	if got := h.states.GetUserState(chatID); got != state.None {
		t.Fatalf("expected state cleared, got %q", got)
	}
}

func TestReportCommand(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.text(t, "/food banana 2")
	reply := h.text(t, "/report")
	if !strings.Contains(reply, "Weekly report") || !strings.Contains(reply, "In: 214 kcal") {
		t.Fatalf("unexpected report %q", reply)
	}
}

func TestTextOutsideFlowShowsMenu(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	reply := h.text(t, "hello")
	if !strings.Contains(reply, "Choose an action") {
		t.Fatalf("expected main menu, got %q", reply)
	}
}
