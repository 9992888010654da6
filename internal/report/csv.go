package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

// rowStrings renders one record in storage.RoundColumns order.
func rowStrings(r model.RoundFeatures) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	b := func(v bool) string {
		if v {
			return "1"
		}
		return "0"
	}
	i := strconv.Itoa
	return []string{
		r.MatchID, i(r.RoundNumber), r.MapName,
		i(r.CTScore), i(r.TScore),
		i(r.CTMoneyTotal), i(r.TMoneyTotal),
		i(r.CTCash), i(r.TCash), f(r.CTCashAvg), f(r.TCashAvg),
		i(r.CTArmor), i(r.TArmor), i(r.CTHelmets), i(r.THelmets), i(r.CTDefusers),
		i(r.CTAWPs), i(r.TAWPs), i(r.CTSSGs), i(r.TSSGs),
		i(r.CTRifles), i(r.TRifles), i(r.CTSMGs), i(r.TSMGs),
		i(r.CTHeavy), i(r.THeavy), i(r.CTAKs), i(r.TAKs),
		i(r.CTSmokes), i(r.TSmokes), i(r.CTMolotovs), i(r.TMolotovs),
		i(r.CTFlashes), i(r.TFlashes), i(r.CTHEs), i(r.THEs),
		i(r.CTUtilityValue), i(r.TUtilityValue),
		i(r.CTEquipValue), i(r.TEquipValue),
		f(r.CTEquipValueAvg), f(r.TEquipValueAvg),
		i(r.CTWonStreak), i(r.CTLostStreak), i(r.TWonStreak), i(r.TLostStreak),
		i(r.CTSurvivorsPrev), i(r.TSurvivorsPrev),
		i(r.CTEquipSavedValue), i(r.TEquipSavedValue),
		b(r.IsSideSwitch), b(r.IsOvertime), i(r.RoundWinner),
	}
}

// WriteCSV writes the full feature table with a header row, one line per
// round, columns in the canonical storage order.
func WriteCSV(w io.Writer, rows []model.RoundFeatures) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(storage.RoundColumns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(rowStrings(r)); err != nil {
			return fmt.Errorf("write round %d: %w", r.RoundNumber, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
