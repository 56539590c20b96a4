package handlers

import (
	"fmt"
	"strings"

	"dxf-service/internal/dxf/document"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Inline transmission
// ============================================================

const dxfMIME = "image/vnd.dxf"

// SendInline renders doc and sends it as an inline DXF attachment named
// filename.
func SendInline(c fiber.Ctx, filename string, doc *document.Document) error {
	return sendDXF(c, filename, doc.Bytes())
}

func sendDXF(c fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, dxfMIME)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, dxfFilename(filename)))
	return c.Send(data)
}

// dxfFilename strips characters that would break the header value and adds
// the .dxf extension.
func dxfFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '"' || r == '\\' || r == '/' || r < 0x20:
			return -1
		}
		return r
	}, strings.TrimSpace(name))

	if name == "" {
		name = "drawing"
	}
	if !strings.HasSuffix(strings.ToLower(name), ".dxf") {
		name += ".dxf"
	}
	return name
}
