package helpers

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"strings"
	"text/template"

	"github.com/JuanDiegoVivesCriollo/flores-checkout-backend/models"
	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

type RequestPdf struct {
	bodies []string
}

func (r *RequestPdf) ParseTemplate(templateFileName string, data interface{}) error {
	t, err := template.ParseFiles(templateFileName)
	if err != nil {
		return err
	}
	buf := new(bytes.Buffer)
	if err = t.Execute(buf, data); err != nil {
		return err
	}
	r.bodies = append(r.bodies, buf.String())
	return nil
}

const (
	ConstHTMLNewPage = `
	<div class="new-page"></div>
	`
)

func (r *RequestPdf) GeneratePDF() (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, errors.Wrap(err, "failed creating pdf generator")
	}

	pdfg.AddPage(wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(strings.Join(r.bodies, ConstHTMLNewPage)))))

	err = pdfg.Create()
	if err != nil {
		return nil, err
	}

	return pdfg.Buffer(), nil
}

// GenerateReceiptPDF renders the order receipt with a QR of the order
// number for delivery verification.
func GenerateReceiptPDF(order *models.Order) (*bytes.Buffer, error) {
	r := RequestPdf{}

	img, err := qrcode.New(order.Number, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	base64, err := EncodeImage(img.Image(256))
	if err != nil {
		return nil, err
	}

	receipt := models.OrderReceiptHTML{
		Number:           order.Number,
		DeliveryDistrict: order.DeliveryDistrict,
		DeliveryDate:     order.DeliveryDate.Format("02-01-2006"),
		Items:            order.Items,
		Total:            FormatAmount(order.Total),
		QR:               base64,
	}
	if order.Customer != nil {
		receipt.Firstname = RemoveAccents(order.Customer.Firstname)
		receipt.Lastname = RemoveAccents(order.Customer.Lastname)
	}

	if err := r.ParseTemplate("./templates/pdf/receipt.html", receipt); err != nil {
		return nil, err
	}

	mem, err := r.GeneratePDF()
	if err != nil {
		return nil, err
	}

	return mem, nil
}

func EncodeImage(m image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
