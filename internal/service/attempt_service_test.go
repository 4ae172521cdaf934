package service

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lequiz/lequiz-backend/internal/model"
)

type fakeQuizSource struct {
	quiz *model.Quiz
}

func (f *fakeQuizSource) GetByID(_ context.Context, id string) (*model.Quiz, error) {
	if f.quiz == nil || f.quiz.ID != id {
		return nil, ErrQuizNotFound
	}
	return f.quiz, nil
}

type fakeResultSink struct {
	got []*model.Result
	err error
}

func (f *fakeResultSink) Submit(_ context.Context, res *model.Result) error {
	if f.err != nil {
		return f.err
	}
	f.got = append(f.got, res)
	return nil
}

func newAttemptFixture(t *testing.T) (*AttemptService, *fakeResultSink, *model.Quiz) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	quiz := attemptQuiz()
	sink := &fakeResultSink{}
	svc := NewAttemptService(&fakeQuizSource{quiz: quiz}, sink, client, zerolog.Nop(), time.Hour)
	return svc, sink, quiz
}

func TestAttemptServiceStart(t *testing.T) {
	svc, _, quiz := newAttemptFixture(t)
	ctx := context.Background()

	view, err := svc.Start(ctx, quiz.ID, "alice")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if view.Position != 0 || !view.First {
		t.Fatalf("expected the first question, got %+v", view)
	}
	if view.AttemptID == uuid.Nil {
		t.Fatal("attempt id missing")
	}
}

func TestAttemptServiceStartUnknownQuiz(t *testing.T) {
	svc, _, _ := newAttemptFixture(t)

	if _, err := svc.Start(context.Background(), "missing", "alice"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestAttemptServiceStatePersistsBetweenCalls(t *testing.T) {
	svc, _, quiz := newAttemptFixture(t)
	ctx := context.Background()

	view, err := svc.Start(ctx, quiz.ID, "alice")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.AttemptID

	if _, err := svc.Next(ctx, id, nil); err != nil {
		t.Fatalf("next: %v", err)
	}
	ans := model.SelectedAnswer(1)
	if _, err := svc.Next(ctx, id, &ans); err != nil {
		t.Fatalf("next: %v", err)
	}

	// A separate Get sees the committed answer after walking back.
	if _, err := svc.Prev(ctx, id, nil); err != nil {
		t.Fatalf("prev: %v", err)
	}
	view, err = svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Recorded == nil || view.Recorded.Selected == nil || *view.Recorded.Selected != 1 {
		t.Fatalf("recorded answer lost across calls: %+v", view.Recorded)
	}
}

func TestAttemptServiceFinishSubmitsResult(t *testing.T) {
	svc, sink, quiz := newAttemptFixture(t)
	ctx := context.Background()

	view, err := svc.Start(ctx, quiz.ID, "alice")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.AttemptID

	if _, err := svc.Next(ctx, id, nil); err != nil {
		t.Fatal(err)
	}
	ans := model.SelectedAnswer(1)
	if _, err := svc.Next(ctx, id, &ans); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Next(ctx, id, nil); err != nil {
		t.Fatal(err)
	}

	text := model.TextAnswer("facturation")
	sum, err := svc.Finish(ctx, id, &text)
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if sum == nil || sum.EarnedPoints != 3 || sum.CorrectCount != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	if len(sink.got) != 1 {
		t.Fatalf("expected 1 submitted result, got %d", len(sink.got))
	}
	res := sink.got[0]
	if res.ParticipantID != "alice" || res.QuizID != quiz.ID {
		t.Fatalf("wrong result identity: %+v", res)
	}
	if res.Score != 3 || res.Correct != 2 || res.Total != 2 {
		t.Fatalf("wrong result counters: %+v", res)
	}

	// The session is gone after finishing.
	if _, err := svc.Get(ctx, id); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound after finish, got %v", err)
	}
}

func TestAttemptServiceFinishKeepsSessionOnSubmitFailure(t *testing.T) {
	svc, sink, quiz := newAttemptFixture(t)
	ctx := context.Background()
	sink.err = errors.New("queue down")

	view, err := svc.Start(ctx, quiz.ID, "alice")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	id := view.AttemptID
	for i := 0; i < 3; i++ {
		if _, err := svc.Next(ctx, id, nil); err != nil {
			t.Fatal(err)
		}
	}

	text := model.TextAnswer("facturation")
	if _, err := svc.Finish(ctx, id, &text); err == nil {
		t.Fatal("finish succeeded although the sink failed")
	}

	// The participant can retry: the session is still loadable.
	sink.err = nil
	if _, err := svc.Finish(ctx, id, &text); err != nil {
		t.Fatalf("retry finish: %v", err)
	}
}

func TestAttemptServiceUnknownAttempt(t *testing.T) {
	svc, _, _ := newAttemptFixture(t)

	if _, err := svc.Get(context.Background(), uuid.New()); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("expected ErrAttemptNotFound, got %v", err)
	}
}
