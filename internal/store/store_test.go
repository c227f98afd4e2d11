package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/hofgolf/go-server/internal/game"
)

func sampleGame() *game.ActiveGame {
	pick := "ruthba01"
	name := "Babe Ruth"
	return &game.ActiveGame{
		ID:        "hof-golf-1756600000000",
		ModeID:    "hof-golf",
		StartedAt: 1756600000000,
		Rounds: []game.Round{{
			TeamID:           "NYA",
			TeamName:         "New York Yankees",
			YearID:           1927,
			PickedPlayerID:   &pick,
			PickedPlayerName: &name,
			TargetsFound:     []game.Target{{PlayerID: "ruthba01", Name: "Babe Ruth", Points: 1}},
			PointsEarned:     1,
			TeamW:            110,
			TeamL:            44,
		}},
		SeenTargets: []string{"ruthba01"},
		TotalPoints: 1,
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	// Empty store reads as absent, not as an error.
	if g, err := m.LoadActive(ctx); err != nil || g != nil {
		t.Fatalf("LoadActive on empty store = %v, %v", g, err)
	}

	want := sampleGame()
	if err := m.SaveActive(ctx, want); err != nil {
		t.Fatalf("SaveActive: %v", err)
	}
	got, err := m.LoadActive(ctx)
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if got.ID != want.ID || got.TotalPoints != want.TotalPoints || len(got.Rounds) != 1 {
		t.Errorf("loaded game = %+v, want %+v", got, want)
	}
	if *got.Rounds[0].PickedPlayerID != "ruthba01" {
		t.Errorf("pick did not survive round trip: %+v", got.Rounds[0])
	}

	// nil clears.
	if err := m.SaveActive(ctx, nil); err != nil {
		t.Fatalf("SaveActive(nil): %v", err)
	}
	if g, _ := m.LoadActive(ctx); g != nil {
		t.Errorf("expected cleared active game, got %+v", g)
	}
}

func TestMemoryHistoryAndBest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	hist := []game.SavedGame{{ID: "a", ModeID: "hof-golf", TotalPoints: 7}}
	if err := m.SaveHistory(ctx, hist); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	got, err := m.LoadHistory(ctx)
	if err != nil || len(got) != 1 || got[0].TotalPoints != 7 {
		t.Fatalf("LoadHistory = %+v, %v", got, err)
	}

	best := map[string]int{"hof-golf": 7, "manager-golf": 3}
	if err := m.SaveBestScores(ctx, best); err != nil {
		t.Fatalf("SaveBestScores: %v", err)
	}
	b, err := m.LoadBestScores(ctx)
	if err != nil || b["hof-golf"] != 7 || b["manager-golf"] != 3 {
		t.Fatalf("LoadBestScores = %+v, %v", b, err)
	}
}

func TestSQLiteSaveActiveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS app_state")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := NewSQLite(db)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}

	mock.ExpectExec("INSERT INTO app_state").
		WithArgs("active-game", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := s.SaveActive(context.Background(), sampleGame()); err != nil {
		t.Fatalf("SaveActive: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSQLiteSaveActiveNilDeletes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS app_state")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := NewSQLite(db)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}

	mock.ExpectExec("DELETE FROM app_state").
		WithArgs("active-game").
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := s.SaveActive(context.Background(), nil); err != nil {
		t.Fatalf("SaveActive(nil): %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSQLiteLoadActiveDecodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS app_state")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := NewSQLite(db)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}

	raw, _ := marshalState(sampleGame())
	mock.ExpectQuery("SELECT value FROM app_state").
		WithArgs("active-game").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(string(raw)))

	g, err := s.LoadActive(context.Background())
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if g == nil || g.ID != "hof-golf-1756600000000" || g.TotalPoints != 1 {
		t.Errorf("loaded = %+v", g)
	}

	// Missing key decodes as no active game.
	mock.ExpectQuery("SELECT value FROM app_state").
		WithArgs("active-game").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	g, err = s.LoadActive(context.Background())
	if err != nil || g != nil {
		t.Errorf("empty load = %+v, %v", g, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestSQLiteBestScoresRoundTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS app_state")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s, err := NewSQLite(db)
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}

	mock.ExpectExec("INSERT INTO app_state").
		WithArgs("best-scores", `{"hof-golf":9}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := s.SaveBestScores(context.Background(), map[string]int{"hof-golf": 9}); err != nil {
		t.Fatalf("SaveBestScores: %v", err)
	}

	mock.ExpectQuery("SELECT value FROM app_state").
		WithArgs("best-scores").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`{"hof-golf":9}`))
	b, err := s.LoadBestScores(context.Background())
	if err != nil || b["hof-golf"] != 9 {
		t.Fatalf("LoadBestScores = %+v, %v", b, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
