package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/TaiZo1/cs2-win-prediction/internal/model"
	"github.com/TaiZo1/cs2-win-prediction/internal/storage"
)

// rowValues renders one record as typed cell values so spreadsheets see
// real numbers, in storage.RoundColumns order.
func rowValues(r model.RoundFeatures) []any {
	b := func(v bool) int {
		if v {
			return 1
		}
		return 0
	}
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
		b(r.IsSideSwitch), b(r.IsOvertime), r.RoundWinner,
	}
}

// WriteXLSX writes the full feature table as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []model.RoundFeatures) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Rounds"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := storage.RoundColumns()
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := rowValues(r)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fmt.Errorf("write round %d: %w", r.RoundNumber, err)
		}
	}

	// Keep the header visible while scrolling through long tables.
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
