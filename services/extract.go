package services

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Giới hạn độ dài văn bản tham khảo đưa vào prompt sinh khóa học
const maxReferenceTextLen = 20000

// ExtractReferenceText đọc file tài liệu tham khảo (.pdf/.docx/.txt) và trả
// về văn bản thuần để ghép vào prompt. Văn bản dài bị cắt bớt.
func ExtractReferenceText(fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	var text string
	var err error
	switch ext {
	case ".pdf":
		text, err = extractPDF(fileHeader)
	case ".docx":
		text, err = extractDOCX(fileHeader)
	case ".txt":
		text, err = extractTXT(fileHeader)
	default:
		return "", errors.New("định dạng file không hỗ trợ, chỉ nhận .pdf, .docx, .txt")
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if len(text) > maxReferenceTextLen {
		text = text[:maxReferenceTextLen]
	}
	return text, nil
}

func readAll(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func extractPDF(fileHeader *multipart.FileHeader) (string, error) {
	data, err := readAll(fileHeader)
	if err != nil {
		return "", fmt.Errorf("lỗi đọc file PDF: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("không thể tạo reader PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue // trang hỏng thì bỏ qua, lấy các trang còn lại
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

func extractDOCX(fileHeader *multipart.FileHeader) (string, error) {
	data, err := readAll(fileHeader)
	if err != nil {
		return "", err
	}

	// .docx là file zip, văn bản nằm trong word/document.xml
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("không đọc được file docx: %w", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("file docx thiếu word/document.xml")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	// Gom nội dung các tag <w:t>
	var b strings.Builder
	decoder := xml.NewDecoder(rc)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "t" {
			var text string
			if err := decoder.DecodeElement(&text, &se); err == nil {
				b.WriteString(text)
				b.WriteString(" ")
			}
		}
	}
	return b.String(), nil
}

func extractTXT(fileHeader *multipart.FileHeader) (string, error) {
	data, err := readAll(fileHeader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
