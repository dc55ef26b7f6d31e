package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

	documentHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	documentFooter = `<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1134" w:right="1134" w:bottom="1134" w:left="1134" w:header="708" w:footer="708" w:gutter="0"/></w:sectPr></w:body></w:document>`
)

// DOCXConverter writes a minimal WordprocessingML package: a bold heading
// followed by one paragraph per body line.
type DOCXConverter struct{}

var _ Converter = DOCXConverter{}

func (DOCXConverter) Convert(title, body string) ([]byte, error) {
	document, err := documentXML(title, body)
	if err != nil {
		return nil, err
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)

	parts := []struct {
		name    string
		content string
	}{
		{name: "[Content_Types].xml", content: contentTypesXML},
		{name: "_rels/.rels", content: packageRelsXML},
		{name: "word/document.xml", content: document},
	}
	for _, part := range parts {
		w, err := writer.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close docx: %w", err)
	}
	return output.Bytes(), nil
}

func documentXML(title, body string) (string, error) {
	var b strings.Builder
	b.WriteString(documentHeader)

	if err := writeParagraph(&b, title, true); err != nil {
		return "", err
	}
	body = strings.ReplaceAll(body, "\r\n", "\n")
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			b.WriteString("<w:p/>")
			continue
		}
		if err := writeParagraph(&b, line, false); err != nil {
			return "", err
		}
	}

	b.WriteString(documentFooter)
	return b.String(), nil
}

func writeParagraph(b *strings.Builder, text string, heading bool) error {
	b.WriteString("<w:p>")
	if heading {
		b.WriteString(`<w:r><w:rPr><w:b/><w:sz w:val="32"/></w:rPr>`)
	} else {
		b.WriteString("<w:r>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	if err := xml.EscapeText(b, []byte(text)); err != nil {
		return fmt.Errorf("escape paragraph: %w", err)
	}
	b.WriteString("</w:t></w:r></w:p>")
	return nil
}
