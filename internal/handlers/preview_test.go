// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"physiocms/internal/blocks"
	"physiocms/internal/models"
	"physiocms/internal/preview"
	"physiocms/internal/site"
)

func newTestPreview(t *testing.T) *Preview {
	t.Helper()
	renderer, err := blocks.NewRenderer()
	if err != nil {
		t.Fatalf("blocks.NewRenderer: %v", err)
	}
	engine, err := site.New(nil, nil, nil, nil, renderer)
	if err != nil {
		t.Fatalf("site.New: %v", err)
	}
	return NewPreview(nil, engine)
}

func previewRequest(t *testing.T, msg *preview.Message) *http.Request {
	t.Helper()
	return jsonRequest(t, http.MethodPost, "/api/admin/preview/render?brand=physio-konzept", msg)
}

func TestPreviewRenderAck(t *testing.T) {
	h := newTestPreview(t)
	blk := paletteBlock(t, "quote")
	blk.Props = json.RawMessage(`{"text":"Bewegung ist Leben."}`)

	msg, err := preview.NewMessage(preview.TypeUpdate, "page-1", draft{Blocks: []models.Block{blk}})
	if err != nil {
		t.Fatal(err)
	}
	msg.SessionID = "editor-7"

	w := httptest.NewRecorder()
	h.Render(w, previewRequest(t, msg))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if !preview.IsBridgeMessage(w.Body.Bytes()) {
		t.Fatalf("reply is not a bridge message: %s", w.Body.String())
	}

	reply := decodeBody[preview.Message](t, w)
	if reply.Type != preview.TypeAck {
		t.Fatalf("type = %q, want ack", reply.Type)
	}
	if reply.RequestID != msg.RequestID || reply.SessionID != "editor-7" || reply.PageID != "page-1" {
		t.Errorf("reply does not echo the request: %+v", reply)
	}

	var p renderedPayload
	if err := json.Unmarshal(reply.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.HTML, "Bewegung ist Leben.") || !strings.Contains(p.HTML, blk.ID.String()) {
		t.Errorf("html = %s", p.HTML)
	}
}

func TestPreviewRenderInvalidDraft(t *testing.T) {
	h := newTestPreview(t)
	blk := paletteBlock(t, "faq")
	blk.Props = json.RawMessage(`{"items":[]}`)

	msg, _ := preview.NewMessage(preview.TypeUpdate, "page-1", draft{Blocks: []models.Block{blk}})
	w := httptest.NewRecorder()
	h.Render(w, previewRequest(t, msg))

	reply := decodeBody[preview.Message](t, w)
	if reply.Type != preview.TypeError {
		t.Fatalf("type = %q, want error", reply.Type)
	}
	var p errorPayload
	if err := json.Unmarshal(reply.Payload, &p); err != nil {
		t.Fatal(err)
	}
	if p.Field != "blocks[0].props.items" {
		t.Errorf("field = %q, want blocks[0].props.items", p.Field)
	}
}

func TestPreviewRenderRejectsOtherMessages(t *testing.T) {
	h := newTestPreview(t)

	ready, _ := preview.NewMessage(preview.TypeReady, "page-1", nil)
	w := httptest.NewRecorder()
	h.Render(w, previewRequest(t, ready))
	if w.Code != http.StatusBadRequest {
		t.Errorf("ready message: status %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	h.Render(w, jsonRequest(t, http.MethodPost, "/", map[string]any{"type": "preview:update"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("partial envelope: status %d, want 400", w.Code)
	}
}
