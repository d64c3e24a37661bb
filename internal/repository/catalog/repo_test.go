package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/triporama/placedex/internal/domain/place"
)

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	r := NewWithClient(c, "placedex")
	if err := r.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	r := NewWithClient(c, "placedex")
	if err := r.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestUpsert_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET" && cmd[1] == "placedex:place:rec-1"
		})).
		Return(mock.Result(mock.RedisInt64(3)))

	r := NewWithClient(c, "placedex")
	err := r.Upsert(context.Background(), place.Record{
		ID:        "rec-1",
		Name:      "Blue Bottle Coffee",
		Latitude:  37.7763,
		Longitude: -122.4233,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpsert_MissingID(t *testing.T) {
	r := NewWithClient(nil, "placedex") // client not called
	err := r.Upsert(context.Background(), place.Record{Name: "no id"})
	if err == nil {
		t.Fatal("expected error for missing ID")
	}
}

func TestUpsert_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "HSET"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	r := NewWithClient(c, "placedex")
	err := r.Upsert(context.Background(), place.Record{ID: "rec-1", Name: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestListAll_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0),
			mock.RedisArray(
				mock.RedisString("placedex:place:rec-2"),
				mock.RedisString("placedex:place:rec-1"),
			),
		)))

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"name": mock.RedisString("Cafe One"),
				"lat":  mock.RedisString("48.8566"),
				"lon":  mock.RedisString("2.3522"),
			})),
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"name":   mock.RedisString("Cafe Two"),
				"lat":    mock.RedisString("48.86"),
				"lon":    mock.RedisString("2.35"),
				"source": mock.RedisString("editorial"),
			})),
		})

	r := NewWithClient(c, "placedex")
	records, err := r.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// keys are sorted before fetching, rec-1 first
	if records[0].ID != "rec-1" || records[0].Name != "Cafe One" {
		t.Errorf("unexpected first record: %+v", records[0])
	}
	if records[0].Latitude != 48.8566 {
		t.Errorf("unexpected latitude: %v", records[0].Latitude)
	}
	if records[1].ID != "rec-2" || records[1].Source != place.SourceEditorial {
		t.Errorf("unexpected second record: %+v", records[1])
	}
}

func TestListAll_MultiPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	first := true
	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		DoAndReturn(func(_ context.Context, _ rueidis.Completed) rueidis.RedisResult {
			if first {
				first = false
				return mock.Result(mock.RedisArray(
					mock.RedisInt64(7),
					mock.RedisArray(mock.RedisString("placedex:place:a")),
				))
			}
			return mock.Result(mock.RedisArray(
				mock.RedisInt64(0),
				mock.RedisArray(mock.RedisString("placedex:place:b")),
			))
		}).Times(2)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"name": mock.RedisString("A"),
			})),
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"name": mock.RedisString("B"),
			})),
		})

	r := NewWithClient(c, "placedex")
	records, err := r.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
}

func TestListAll_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "SCAN"
		})).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(0),
			mock.RedisArray(),
		)))

	r := NewWithClient(c, "placedex")
	records, err := r.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records != nil {
		t.Errorf("expected nil, got %v", records)
	}
}

func TestBatchDelete_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("DEL", "placedex:place:rec-1", "placedex:place:rec-2")).
		Return(mock.Result(mock.RedisInt64(2)))

	r := NewWithClient(c, "placedex")
	if err := r.BatchDelete(context.Background(), []string{"rec-1", "rec-2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBatchDelete_Empty(t *testing.T) {
	r := NewWithClient(nil, "placedex") // client not called
	if err := r.BatchDelete(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordFieldsRoundTrip(t *testing.T) {
	rating := 4.5
	rec := place.Record{
		ID:           "rec-9",
		ExternalID:   "ext-9",
		Name:         "Tartine Bakery",
		Latitude:     37.7614,
		Longitude:    -122.4241,
		City:         "San Francisco",
		Country:      "US",
		CategorySlug: "bakery",
		Rating:       &rating,
		RatingCount:  812,
		CoverImage:   "https://img.example/tartine.jpg",
		OpeningHours: "08:00-17:00",
		Source:       place.SourceProviderImport,
		UpdatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	got := recordFromFields(recordToFields(rec))
	got.ID = rec.ID // ID travels in the key, not the hash

	if got.Name != rec.Name || got.ExternalID != rec.ExternalID {
		t.Errorf("identity fields lost: %+v", got)
	}
	if got.Latitude != rec.Latitude || got.Longitude != rec.Longitude {
		t.Errorf("coordinates lost: %+v", got)
	}
	if got.Rating == nil || *got.Rating != rating {
		t.Errorf("rating lost: %+v", got.Rating)
	}
	if got.RatingCount != rec.RatingCount || got.Source != rec.Source {
		t.Errorf("quality fields lost: %+v", got)
	}
	if !got.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Errorf("updated_at lost: %v", got.UpdatedAt)
	}
}

func TestRecordFromFields_Malformed(t *testing.T) {
	rec := recordFromFields(map[string]string{
		"name":   "Broken",
		"lat":    "not-a-number",
		"lon":    "",
		"rating": "??",
	})
	if rec.Latitude != 0 || rec.Longitude != 0 {
		t.Errorf("expected zero coordinates, got %v %v", rec.Latitude, rec.Longitude)
	}
	if rec.Rating != nil {
		t.Errorf("expected nil rating, got %v", rec.Rating)
	}
}
