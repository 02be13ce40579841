package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var gameColumns = []string{"id", "source", "category", "difficulty", "started_at", "finished_at", "score", "total"}

// gameRepo implements GameRepo with queries built by the ent SQL builder.
type gameRepo struct {
	db *sql.DB
}

func (r *gameRepo) SaveGame(ctx context.Context, g *GameRecord) error {
	if g.ID == "" {
		return errors.New("save game: empty id")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(gamesTable).
		Columns(gameColumns...).
		Values(g.ID, g.Source, g.Category, g.Difficulty, g.StartedAt, g.FinishedAt, g.Score, g.Total).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	if len(g.Answers) > 0 {
		ins := entsql.Dialect(dialect.SQLite).
			Insert(answersTable).
			Columns("game_id", "position", "question", "category", "difficulty", "correct_answer", "selected", "correct")
		for _, a := range g.Answers {
			ins.Values(g.ID, a.Position, a.Question, a.Category, a.Difficulty, a.CorrectAnswer, a.Selected, a.Correct)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save answers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit game: %w", err)
	}
	return nil
}

func (r *gameRepo) ListGames(ctx context.Context, opts QueryOpts) ([]GameRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(gameColumns...).
		From(entsql.Table(gamesTable)).
		OrderBy(entsql.Desc("finished_at"))

	if opts.Source != "" {
		sel.Where(entsql.EQ("source", opts.Source))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("finished_at", opts.From))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("finished_at", opts.To))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		if err := rows.Scan(&g.ID, &g.Source, &g.Category, &g.Difficulty,
			&g.StartedAt, &g.FinishedAt, &g.Score, &g.Total); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *gameRepo) GameAnswers(ctx context.Context, gameID string) ([]AnswerRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("position", "question", "category", "difficulty", "correct_answer", "selected", "correct").
		From(entsql.Table(answersTable)).
		Where(entsql.EQ("game_id", gameID)).
		OrderBy(entsql.Asc("position")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var answers []AnswerRecord
	for rows.Next() {
		var a AnswerRecord
		if err := rows.Scan(&a.Position, &a.Question, &a.Category, &a.Difficulty,
			&a.CorrectAnswer, &a.Selected, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *gameRepo) Stats(ctx context.Context) (*GameStats, error) {
	var st GameStats

	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*"), "COALESCE(SUM(`score`), 0)", "COALESCE(SUM(`total`), 0)").
		From(entsql.Table(gamesTable)).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.Games, &st.Correct, &st.Questions); err != nil {
		return nil, fmt.Errorf("aggregate games: %w", err)
	}
	if st.Games == 0 {
		return &st, nil
	}
	if st.Questions > 0 {
		st.Accuracy = float64(st.Correct) / float64(st.Questions)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Select("score", "total").
		From(entsql.Table(gamesTable)).
		OrderBy(entsql.Desc("score"), entsql.Asc("total"), entsql.Asc("finished_at")).
		Limit(1).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&st.BestScore, &st.BestTotal); err != nil {
		return nil, fmt.Errorf("best game: %w", err)
	}
	return &st, nil
}

func (r *gameRepo) Reset(ctx context.Context) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args := entsql.Dialect(dialect.SQLite).Delete(answersTable).Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("delete answers: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).Delete(gamesTable).Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete games: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit reset: %w", err)
	}
	return int(n), nil
}
