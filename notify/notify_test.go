package notify

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestNewDefaultsAuthor(t *testing.T) {
	n, err := New("", 3, "Well... We are starting!")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if n.Author != DefaultAuthor || n.Day != 3 {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestNewRejectsInvalidMessage(t *testing.T) {
	for _, msg := range []string{"", string([]byte{0xff, 0xfe})} {
		if _, err := New("tiger Abcde", 0, msg); !errors.Is(err, ErrInvalidMessage) {
			t.Errorf("New(%q) error = %v, want ErrInvalidMessage", msg, err)
		}
	}
}

func TestQueueKeepsNewestFirst(t *testing.T) {
	q := NewQueue(DefaultCapacity)
	for i := 0; i < 15; i++ {
		n, _ := New("", i, fmt.Sprintf("message %d", i))
		q.Push(n)
	}

	items := q.Items()
	if len(items) != DefaultCapacity {
		t.Fatalf("len = %d, want %d", len(items), DefaultCapacity)
	}
	if items[0].Day != 14 {
		t.Errorf("newest day = %d, want 14", items[0].Day)
	}
	if items[len(items)-1].Day != 5 {
		t.Errorf("oldest kept day = %d, want 5", items[len(items)-1].Day)
	}
}

func TestQueueBelowCapacity(t *testing.T) {
	q := NewQueue(0)
	a, _ := New("", 1, "a")
	b, _ := New("", 2, "b")
	q.Push(a)
	q.Push(b)
	items := q.Items()
	if q.Len() != 2 || items[0].Message != "b" || items[1].Message != "a" {
		t.Errorf("unexpected queue contents %+v", items)
	}
}

func TestLogSinkAndMulti(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	q := NewQueue(2)

	sink := Multi{q, LogSink{Logger: logger}, nil}
	n, _ := New("tiger Abcde", 7, "I see a light... Goodbye... my friends...")
	sink.Push(n)

	if q.Len() != 1 {
		t.Errorf("queue len = %d, want 1", q.Len())
	}
	out := buf.String()
	if !strings.Contains(out, "author=\"tiger Abcde\"") || !strings.Contains(out, "day=7") {
		t.Errorf("log output missing fields: %s", out)
	}
}
