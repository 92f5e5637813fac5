// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
		ok   bool
	}{
		{"png", pngBytes(t), "image/png", true},
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), "image/jpeg", true},
		{"pdf", []byte("%PDF-1.7\n%âãÏÓ\n"), "application/pdf", true},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1"></svg>`), "image/svg+xml", true},
		{"html", []byte("<!DOCTYPE html><html><body>x</body></html>"), "", false},
		{"plain text", []byte("just some words"), "", false},
		{"zip", []byte("PK\x03\x04\x14\x00\x00\x00"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, ok := sniff(tt.data)
			if got != tt.want || ok != tt.ok {
				t.Errorf("sniff = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMediaUploadWithoutStorage(t *testing.T) {
	h := NewMedia(nil, nil, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "bild.png")
	fw.Write(pngBytes(t))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/media", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	h.Upload(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d, want 503", w.Code)
	}
	if got := decodeBody[errorBody](t, w); got.Error != msgNoStorage {
		t.Errorf("error = %q", got.Error)
	}
}

func TestFolderInputValidate(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"Praxisfotos", true},
		{"  ", false},
		{string(bytes.Repeat([]byte("a"), maxFolderNameLen+1)), false},
	}
	for _, tt := range tests {
		in := folderInput{Name: tt.name}
		if _, ok := in.validate(); ok != tt.ok {
			t.Errorf("validate(%q) ok = %v, want %v", tt.name, ok, tt.ok)
		}
	}
}

func TestOptionalText(t *testing.T) {
	if got, ok := optionalText("   "); got != nil || !ok {
		t.Errorf("blank: (%v, %v)", got, ok)
	}
	if got, ok := optionalText(" Therapieraum "); !ok || got == nil || *got != "Therapieraum" {
		t.Errorf("trimmed: (%v, %v)", got, ok)
	}
	if _, ok := optionalText(string(bytes.Repeat([]byte("x"), maxAltTextLen+1))); ok {
		t.Error("over-long alt text accepted")
	}
}
