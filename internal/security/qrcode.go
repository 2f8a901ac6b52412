package security

import (
	qrcode "github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

func QRCodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultQRSize
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}
