package reports

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/denmor86/ya-orderbot/internal/models"
	"github.com/denmor86/ya-orderbot/internal/pricing"
	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet = "Заказы"
	StatsSheet  = "Статистика"
)

var orderHeaders = []interface{}{"ID", "Имя", "Телефон", "Товар", "Количество", "Сумма", "Прибыль", "Статус", "Дата создания"}

// ExportFilename - имя файла выгрузки вида statistics_20240501_120000.xlsx
func ExportFilename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("20060102_150405"))
}

type styles struct {
	title  int
	header int
	text   int
	number int
}

func newStyles(f *excelize.File) (styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "B4C6E7", Style: 1},
		{Type: "right", Color: "B4C6E7", Style: 1},
		{Type: "top", Color: "B4C6E7", Style: 1},
		{Type: "bottom", Color: "B4C6E7", Style: 1},
	}
	var s styles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "1F4E78"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    border,
	}); err != nil {
		return s, err
	}
	if s.text, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Border:    border,
	}); err != nil {
		return s, err
	}
	s.number, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    border,
		NumFmt:    3,
	})
	return s, err
}

// sheetWriter запоминает первую ошибку, чтобы не проверять каждый вызов excelize
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles styles
	widths map[int]int
	err    error
}

func (w *sheetWriter) cell(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil && w.err == nil {
		w.err = err
	}
	return name
}

func (w *sheetWriter) row(row int, values ...interface{}) {
	for i, v := range values {
		if w.err != nil {
			return
		}
		col := i + 1
		cell := w.cell(col, row)
		if err := w.f.SetCellValue(w.sheet, cell, v); err != nil {
			w.err = err
			return
		}
		style := w.styles.text
		switch v.(type) {
		case int, int64:
			style = w.styles.number
		}
		if err := w.f.SetCellStyle(w.sheet, cell, cell, style); err != nil {
			w.err = err
			return
		}
		if n := utf8.RuneCountInString(fmt.Sprint(v)); n > w.widths[col] {
			w.widths[col] = n
		}
	}
}

func (w *sheetWriter) header(row int, values ...interface{}) {
	w.row(row, values...)
	if w.err != nil || len(values) == 0 {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, w.cell(1, row), w.cell(len(values), row), w.styles.header)
}

func (w *sheetWriter) title(text string, columns int) {
	if w.err != nil {
		return
	}
	first, last := w.cell(1, 1), w.cell(columns, 1)
	if w.err = w.f.SetCellValue(w.sheet, first, text); w.err != nil {
		return
	}
	if w.err = w.f.MergeCell(w.sheet, first, last); w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(w.sheet, first, last, w.styles.title)
}

func (w *sheetWriter) finish(freezeRow int) {
	for col, width := range w.widths {
		if w.err != nil {
			return
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(w.sheet, name, name, float64(width+4))
	}
	if w.err != nil {
		return
	}
	w.err = w.f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      freezeRow,
		TopLeftCell: w.cell(1, freezeRow+1),
		ActivePane:  "bottomLeft",
	})
}

func (w *sheetWriter) chart(anchor string, chart *excelize.Chart) {
	if w.err != nil {
		return
	}
	w.err = w.f.AddChart(w.sheet, anchor, chart)
}

func (w *sheetWriter) ref(col, fromRow, toRow int) string {
	return fmt.Sprintf("'%s'!$%s:$%s", w.sheet, absCell(w.cell(col, fromRow)), absCell(w.cell(col, toRow)))
}

func absCell(cell string) string {
	col, row, err := excelize.SplitCellName(cell)
	if err != nil {
		return cell
	}
	return fmt.Sprintf("%s$%d", col, row)
}

// BuildWorkbook строит книгу с листами "Заказы" и "Статистика" и возвращает её содержимое
func BuildWorkbook(orders []models.Order, loc *time.Location) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), OrdersSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(StatsSheet); err != nil {
		return nil, err
	}
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create styles: %w", err)
	}

	if err := writeOrdersSheet(&sheetWriter{f: f, sheet: OrdersSheet, styles: st, widths: map[int]int{}}, orders, loc); err != nil {
		return nil, fmt.Errorf("failed to write orders sheet: %w", err)
	}
	if err := writeStatsSheet(&sheetWriter{f: f, sheet: StatsSheet, styles: st, widths: map[int]int{}}, orders); err != nil {
		return nil, fmt.Errorf("failed to write statistics sheet: %w", err)
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOrdersSheet(w *sheetWriter, orders []models.Order, loc *time.Location) error {
	w.title("Список всех заказов", len(orderHeaders))
	w.header(2, orderHeaders...)
	for i, order := range orders {
		quote := pricing.QuoteOrder(order.Product, order.Quantity)
		created := order.CreatedAt
		if t, err := models.ParseCreatedAt(order.CreatedAt); err == nil && loc != nil {
			created = t.In(loc).Format(models.DisplayTimeLayout)
		} else {
			created = models.FormatTimestamp(order.CreatedAt)
		}
		w.row(i+3,
			order.ID.String(), order.Name, order.Phone, order.Product, order.Quantity,
			quote.Price, quote.Profit, string(order.Status), created)
	}
	w.finish(2)
	return w.err
}

func writeStatsSheet(w *sheetWriter, orders []models.Order) error {
	stats := ComputeStatistics(orders)
	finance := ComputeFinance(orders, time.UTC)

	w.title("Статистика заказов", 4)
	w.header(2, "Показатель", "Значение")
	summary := [][]interface{}{
		{"Всего заказов", stats.Total},
		{"Одобрено", stats.Approved},
		{"Отклонено", stats.Rejected},
		{"Ожидает", stats.Pending},
		{"Всего товаров", stats.TotalQuantity},
		{"Общая выручка", Money(finance.Revenue)},
		{"Общая прибыль", Money(finance.Profit)},
	}
	row := 3
	for _, values := range summary {
		w.row(row, values...)
		row++
	}

	row += 2
	w.header(row, "Товар", "Цена", "Себестоимость", "Маржа")
	row++
	for _, p := range pricing.Catalog() {
		w.row(row, p.Label, Money(p.Price), Money(p.Cost), Money(p.Margin()))
		row++
	}

	// продажи по товарам среди всех заказов, по убыванию количества
	row += 2
	w.header(row, "Товар", "Количество", "Сумма", "Прибыль")
	row++
	productsFrom := row
	for _, p := range stats.Products {
		var revenue, profit int64
		for _, order := range orders {
			if order.Product == p.Product {
				quote := pricing.QuoteOrder(order.Product, order.Quantity)
				revenue += quote.Price
				profit += quote.Profit
			}
		}
		w.row(row, p.Product, p.Quantity, revenue, profit)
		row++
	}
	productsTo := row - 1

	row += 2
	w.header(row, "Статус", "Количество")
	row++
	statusFrom := row
	w.row(row, "Одобрено", stats.Approved)
	w.row(row+1, "Отклонено", stats.Rejected)
	w.row(row+2, "Ожидает", stats.Pending)
	row += 3

	row += 2
	w.header(row, "Товар", "Количество")
	row++
	approvedFrom := row
	for _, p := range finance.Products {
		w.row(row, p.Product, p.Quantity)
		row++
	}
	approvedTo := row - 1

	w.finish(2)

	w.chart("F2", &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{{
			Name:       "Количество",
			Categories: w.ref(1, statusFrom, statusFrom+2),
			Values:     w.ref(2, statusFrom, statusFrom+2),
		}},
		Title:     []excelize.RichTextRun{{Text: "Распределение статусов заказов"}},
		PlotArea:  excelize.ChartPlotArea{ShowPercent: true, ShowVal: true},
		Dimension: excelize.ChartDimension{Width: 480, Height: 290},
	})
	if approvedTo >= approvedFrom {
		w.chart("F20", &excelize.Chart{
			Type: excelize.Pie,
			Series: []excelize.ChartSeries{{
				Name:       "Количество",
				Categories: w.ref(1, approvedFrom, approvedTo),
				Values:     w.ref(2, approvedFrom, approvedTo),
			}},
			Title:     []excelize.RichTextRun{{Text: "Распределение продаж по товарам"}},
			PlotArea:  excelize.ChartPlotArea{ShowPercent: true, ShowVal: true},
			Dimension: excelize.ChartDimension{Width: 480, Height: 290},
		})
	}
	if productsTo >= productsFrom {
		w.chart("F38", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       "Количество",
				Categories: w.ref(1, productsFrom, productsTo),
				Values:     w.ref(2, productsFrom, productsTo),
			}},
			Title:     []excelize.RichTextRun{{Text: "Популярные товары"}},
			Legend:    excelize.ChartLegend{Position: "none"},
			Dimension: excelize.ChartDimension{Width: 480, Height: 290},
		})
	}
	return w.err
}
