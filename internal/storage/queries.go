package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
)

// roundColumns is the canonical column order for round_features. Insert
// placeholders, scans and CSV export all derive from this list.
var roundColumns = []string{
	"match_id", "round_number", "map_name",
	"ct_score", "t_score",
	"ct_money_total", "t_money_total",
	"ct_cash", "t_cash", "ct_cash_avg", "t_cash_avg",
	"ct_armor", "t_armor", "ct_helmets", "t_helmets", "ct_defusers",
	"ct_awps", "t_awps", "ct_ssgs", "t_ssgs",
	"ct_rifles", "t_rifles", "ct_smgs", "t_smgs",
	"ct_heavy", "t_heavy", "ct_aks", "t_aks",
	"ct_smokes", "t_smokes", "ct_molotovs", "t_molotovs",
	"ct_flashes", "t_flashes", "ct_hes", "t_hes",
	"ct_utility_value", "t_utility_value",
	"ct_equip_value", "t_equip_value",
	"ct_equip_value_avg", "t_equip_value_avg",
	"ct_won_streak", "ct_lost_streak", "t_won_streak", "t_lost_streak",
	"ct_survivors_prev", "t_survivors_prev",
	"ct_equip_saved_value", "t_equip_saved_value",
	"is_side_switch", "is_overtime", "round_winner",
}

// RoundColumns returns the canonical round_features column order.
func RoundColumns() []string {
	return append([]string(nil), roundColumns...)
}

func roundColumnList() string { return strings.Join(roundColumns, ", ") }

func roundPlaceholders() string {
	return strings.TrimSuffix(strings.Repeat("?,", len(roundColumns)), ",")
}

// roundArgs flattens one record into insert arguments, in roundColumns order.
func roundArgs(r model.RoundFeatures) []any {
	return []any{
		r.MatchID, r.RoundNumber, r.MapName,
		r.CTScore, r.TScore,
		r.CTMoneyTotal, r.TMoneyTotal,
		r.CTCash, r.TCash, r.CTCashAvg, r.TCashAvg,
		r.CTArmor, r.TArmor, r.CTHelmets, r.THelmets, r.CTDefusers,
		r.CTAWPs, r.TAWPs, r.CTSSGs, r.TSSGs,
		r.CTRifles, r.TRifles, r.CTSMGs, r.TSMGs,
		r.CTHeavy, r.THeavy, r.CTAKs, r.TAKs,
		r.CTSmokes, r.TSmokes, r.CTMolotovs, r.TMolotovs,
		r.CTFlashes, r.TFlashes, r.CTHEs, r.THEs,
		r.CTUtilityValue, r.TUtilityValue,
		r.CTEquipValue, r.TEquipValue,
		r.CTEquipValueAvg, r.TEquipValueAvg,
		r.CTWonStreak, r.CTLostStreak, r.TWonStreak, r.TLostStreak,
		r.CTSurvivorsPrev, r.TSurvivorsPrev,
		r.CTEquipSavedValue, r.TEquipSavedValue,
		boolInt(r.IsSideSwitch), boolInt(r.IsOvertime), r.RoundWinner,
	}
}

// scanRound reads one row produced with roundColumnList ordering.
func scanRound(rows *sql.Rows) (model.RoundFeatures, error) {
	var r model.RoundFeatures
	var sideSwitch, overtime int
	err := rows.Scan(
		&r.MatchID, &r.RoundNumber, &r.MapName,
		&r.CTScore, &r.TScore,
		&r.CTMoneyTotal, &r.TMoneyTotal,
		&r.CTCash, &r.TCash, &r.CTCashAvg, &r.TCashAvg,
		&r.CTArmor, &r.TArmor, &r.CTHelmets, &r.THelmets, &r.CTDefusers,
		&r.CTAWPs, &r.TAWPs, &r.CTSSGs, &r.TSSGs,
		&r.CTRifles, &r.TRifles, &r.CTSMGs, &r.TSMGs,
		&r.CTHeavy, &r.THeavy, &r.CTAKs, &r.TAKs,
		&r.CTSmokes, &r.TSmokes, &r.CTMolotovs, &r.TMolotovs,
		&r.CTFlashes, &r.TFlashes, &r.CTHEs, &r.THEs,
		&r.CTUtilityValue, &r.TUtilityValue,
		&r.CTEquipValue, &r.TEquipValue,
		&r.CTEquipValueAvg, &r.TEquipValueAvg,
		&r.CTWonStreak, &r.CTLostStreak, &r.TWonStreak, &r.TLostStreak,
		&r.CTSurvivorsPrev, &r.TSurvivorsPrev,
		&r.CTEquipSavedValue, &r.TEquipSavedValue,
		&sideSwitch, &overtime, &r.RoundWinner,
	)
	if err != nil {
		return r, err
	}
	r.IsSideSwitch = sideSwitch != 0
	r.IsOvertime = overtime != 0
	return r, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// MatchExists returns true if a match with the given id is already stored.
func (db *DB) MatchExists(matchID string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertMatch inserts a match record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertMatch(summary model.MatchSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(match_id, map_name, match_date, source, tickrate, rounds, ct_score, t_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.MatchID, summary.MapName, summary.MatchDate, summary.Source,
		summary.TickRate, summary.Rounds, summary.CTScore, summary.TScore,
	)
	return err
}

// InsertRoundFeatures bulk-inserts a match's feature rows in a transaction.
func (db *DB) InsertRoundFeatures(rows []model.RoundFeatures) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT OR REPLACE INTO round_features(%s) VALUES (%s)",
		roundColumnList(), roundPlaceholders()))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err = stmt.Exec(roundArgs(r)...); err != nil {
			return fmt.Errorf("insert round_features %d: %w", r.RoundNumber, err)
		}
	}
	return tx.Commit()
}

// ListMatches returns all stored match summaries ordered by match_date desc.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, map_name, match_date, source, tickrate, rounds, ct_score, t_score
		FROM matches ORDER BY match_date DESC, match_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		if err := rows.Scan(&s.MatchID, &s.MapName, &s.MatchDate, &s.Source,
			&s.TickRate, &s.Rounds, &s.CTScore, &s.TScore); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetMatchByPrefix finds the first match whose id starts with the given prefix.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	var s model.MatchSummary
	err := db.conn.QueryRow(`
		SELECT match_id, map_name, match_date, source, tickrate, rounds, ct_score, t_score
		FROM matches WHERE match_id LIKE ? LIMIT 1`, prefix+"%").
		Scan(&s.MatchID, &s.MapName, &s.MatchDate, &s.Source,
			&s.TickRate, &s.Rounds, &s.CTScore, &s.TScore)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetRounds returns one match's feature rows ordered by round number.
func (db *DB) GetRounds(matchID string) ([]model.RoundFeatures, error) {
	rows, err := db.conn.Query(fmt.Sprintf(
		"SELECT %s FROM round_features WHERE match_id = ? ORDER BY round_number",
		roundColumnList()), matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRounds(rows)
}

// GetAllRounds returns every stored feature row, grouped by match and
// ordered by round number within each match.
func (db *DB) GetAllRounds() ([]model.RoundFeatures, error) {
	rows, err := db.conn.Query(fmt.Sprintf(
		"SELECT %s FROM round_features ORDER BY match_id, round_number",
		roundColumnList()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRounds(rows)
}

func collectRounds(rows *sql.Rows) ([]model.RoundFeatures, error) {
	var out []model.RoundFeatures
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteMatch removes a match and its feature rows. The child rows are
// deleted explicitly so the result does not depend on the driver's
// foreign-key pragma handling.
func (db *DB) DeleteMatch(matchID string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM round_features WHERE match_id = ?", matchID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM matches WHERE match_id = ?", matchID); err != nil {
		return err
	}
	return tx.Commit()
}

// Overview aggregates store-wide totals for the summary command.
type Overview struct {
	Matches     int
	Rounds      int
	CTRoundWins int
	TRoundWins  int
	Maps        []MapCount
}

// MapCount is the number of stored matches on one map.
type MapCount struct {
	MapName string
	Matches int
}

// GetOverview computes store-wide totals across every stored match.
func (db *DB) GetOverview() (*Overview, error) {
	var o Overview
	err := db.conn.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN round_winner = 1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN round_winner = 0 THEN 1 ELSE 0 END), 0)
		FROM round_features`).Scan(&o.Rounds, &o.CTRoundWins, &o.TRoundWins)
	if err != nil {
		return nil, err
	}
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM matches").Scan(&o.Matches); err != nil {
		return nil, err
	}

	rows, err := db.conn.Query(`
		SELECT map_name, COUNT(*) FROM matches
		GROUP BY map_name ORDER BY COUNT(*) DESC, map_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var mc MapCount
		if err := rows.Scan(&mc.MapName, &mc.Matches); err != nil {
			return nil, err
		}
		o.Maps = append(o.Maps, mc)
	}
	return &o, rows.Err()
}

// QueryRaw runs an arbitrary read-only statement and returns the column
// names plus every row rendered as strings.
func (db *DB) QueryRaw(stmt string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(stmt)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			switch val := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(val)
			default:
				row[i] = fmt.Sprintf("%v", val)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
