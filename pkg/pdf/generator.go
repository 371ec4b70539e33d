package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nira-system/backend/internal/domain"

	"github.com/signintech/gopdf"
)

// card size in points, roughly ID-1 at 150dpi
const (
	cardWidth  = 324.0
	cardHeight = 204.0
)

type Generator struct {
	fontPath string
}

// NewGenerator locates a TTF font for card rendering. gopdf has no built-in
// fonts, so generation fails later if none of the known paths exist.
func NewGenerator() *Generator {
	wd, _ := os.Getwd()

	fontPaths := []string{
		filepath.Join(wd, "fonts", "DejaVuSans.ttf"),
		"./fonts/DejaVuSans.ttf",
		"fonts/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	}

	g := &Generator{}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			g.fontPath = path
			break
		}
	}

	return g
}

// GenerateIDCard renders a national ID card for an approved citizen and
// returns the PDF bytes.
func (g *Generator) GenerateIDCard(citizen *domain.Citizen, issuedBy string) ([]byte, error) {
	if g.fontPath == "" {
		return nil, fmt.Errorf("TTF font not found, place DejaVuSans.ttf in ./fonts/")
	}

	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: cardWidth, H: cardHeight},
		Unit:     gopdf.Unit_PT,
	})

	if err := pdf.AddTTFFont("card", g.fontPath); err != nil {
		return nil, fmt.Errorf("add ttf font failed: %w", err)
	}

	pdf.AddPage()

	if err := pdf.SetFont("card", "", 11); err != nil {
		return nil, fmt.Errorf("set font failed: %w", err)
	}

	pdf.SetXY(16, 14)
	pdf.Cell(nil, "FEDERAL REPUBLIC OF SOMALIA")
	pdf.SetXY(16, 28)
	pdf.SetFont("card", "", 8)
	pdf.Cell(nil, "National Identification & Registration Authority")

	pdf.SetLineWidth(0.5)
	pdf.Line(16, 40, cardWidth-16, 40)

	rows := []struct {
		label string
		value string
	}{
		{"NIN", citizen.NIN},
		{"Name", citizen.FullName},
		{"Gender", citizen.Gender},
		{"Date of Birth", citizen.DOB},
		{"Region", citizen.Region},
		{"District", citizen.District},
	}

	y := 52.0
	for _, row := range rows {
		pdf.SetXY(16, y)
		pdf.SetFont("card", "", 7)
		pdf.Cell(nil, row.label)
		pdf.SetXY(90, y)
		pdf.SetFont("card", "", 9)
		pdf.Cell(nil, row.value)
		y += 18
	}

	pdf.SetXY(16, cardHeight-24)
	pdf.SetFont("card", "", 6)
	pdf.Cell(nil, fmt.Sprintf("Issued %s by %s", time.Now().Format("2006-01-02"), issuedBy))

	return pdf.GetBytesPdf(), nil
}
