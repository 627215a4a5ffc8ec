package models

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mbenaiss/whatsapp-client/format"
	"github.com/mdp/qrterminal"
	"github.com/skip2/go-qrcode"
)

const base64Marker = "base64,"

// QRCode is a pending login challenge.
type QRCode struct {
	Raw    string `json:"raw"`
	Base64 string `json:"base64"`
}

// DecodeQRCode hydrates a QRCode from a gateway payload.
func DecodeQRCode(raw map[string]any) (QRCode, error) {
	var qr QRCode
	if err := decode(raw, &qr, nil); err != nil {
		return QRCode{}, fmt.Errorf("decode qr code: %w", err)
	}
	return qr, nil
}

// Blob returns the decoded QR image, dropping a data URI prefix if present.
func (q QRCode) Blob() ([]byte, error) {
	s := q.Base64
	if format.Contains(s, base64Marker) {
		s = s[strings.Index(s, base64Marker)+len(base64Marker):]
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid qr code image: %w", err)
	}
	return data, nil
}

// PNG renders Raw as a PNG image of the given size in pixels.
func (q QRCode) PNG(size int) ([]byte, error) {
	if q.Raw == "" {
		return nil, fmt.Errorf("qr code has no raw value")
	}
	return qrcode.Encode(q.Raw, qrcode.Medium, size)
}

// Save writes the QR image into dir and returns its path. An empty filename
// gets a random wa_ prefixed name.
func (q QRCode) Save(dir, filename string) (string, error) {
	if filename == "" {
		filename = "wa_" + uuid.NewString() + ".png"
	}

	data, err := q.Blob()
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("error saving qr code to %s: %w", fullPath, err)
	}

	return fullPath, nil
}

// PrintTerminal draws the QR code on w using half block characters.
func (q QRCode) PrintTerminal(w io.Writer) {
	qrterminal.GenerateHalfBlock(q.Raw, qrterminal.L, w)
}

// String returns the base64 image.
func (q QRCode) String() string {
	return q.Base64
}
