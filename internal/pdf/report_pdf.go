package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateReportSummary(data ReportSummaryData) (string, error)
}

// ReportGenerator — выгрузка карточки заявки для бэк-офиса
type ReportGenerator struct {
	RootDir  string // корень хранения, например "./files"
	FontPath string // путь до TTF, например "assets/fonts/DejaVuSans.ttf"
	fontName string
}

type ReportSummaryData struct {
	ReportID    int64
	FullName    string
	PhoneNumber string
	City        string
	Street      string
	Description string
	WasAtDate   string
	WasAtTime   string
	Status      string
	ErrorCode   string
	ErrorText   string
	UploadedAt  time.Time
	Filename    string // имя файла (без путей); если пусто — сгенерируем
}

func NewReportGenerator(rootDir, fontPath string) *ReportGenerator {
	return &ReportGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReportGenerator) GenerateReportSummary(data ReportSummaryData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("report_%d.pdf", data.ReportID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Заявка №%d", data.ReportID), false)
	pdf.SetAuthor("iSPARK", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "КАРТОЧКА ЗАЯВКИ", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("№ %06d  от  %s", data.ReportID, data.UploadedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Заявитель
	g.sectionTitle(pdf, "Заявитель")
	g.kvLine(pdf, "ФИО", data.FullName)
	g.kvLine(pdf, "Телефон", data.PhoneNumber)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Место и время
	g.sectionTitle(pdf, "Место и время")
	g.kvLine(pdf, "Город", data.City)
	g.kvLine(pdf, "Улица", data.Street)
	g.kvLine(pdf, "Дата", data.WasAtDate)
	g.kvLine(pdf, "Время", data.WasAtTime)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Описание
	g.sectionTitle(pdf, "Описание")
	pdf.SetFont(g.fontName, "", 11)
	pdf.MultiCell(0, 6, data.Description, "", "L", false)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Статус
	g.sectionTitle(pdf, "Статус обработки")
	g.kvLine(pdf, "Статус", data.Status)
	if data.ErrorCode != "" {
		g.kvLine(pdf, "Код ошибки", data.ErrorCode)
	}
	if data.ErrorText != "" {
		g.kvLine(pdf, "Текст ошибки", data.ErrorText)
	}

	// ===== Нумерация страниц
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Стр. %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReportGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReportGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	// AddUTF8Font принимает путь до TTF
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
