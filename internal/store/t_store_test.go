package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/martinmajer/mechanika/internal/document"
	"github.com/martinmajer/mechanika/internal/frame"
	"github.com/martinmajer/mechanika/internal/geom"
)

func openTest(tst *testing.T) *Store {
	db, err := Open(filepath.Join(tst.TempDir(), "db", "models.db"))
	if err != nil {
		tst.Fatalf("open: %v", err)
	}
	tst.Cleanup(func() { db.Close() })
	s := New(db)
	if err := s.Init(context.Background()); err != nil {
		tst.Fatalf("init: %v", err)
	}
	return s
}

func sample() *document.Document {
	m := frame.New()
	m.AddBeam(frame.NewBeam(geom.V(0, 0), geom.V(4, 0)))
	m.AddSupport(frame.NewSupport(frame.Pinned, geom.V(0, 0), geom.V(0, -1)))
	m.AddSupport(frame.NewSupport(frame.Roller, geom.V(4, 0), geom.V(0, -1)))
	m.AddForce(frame.NewForce(geom.V(2, 0), geom.V(0, 1), 10))
	return document.FromModel(m)
}

func Test_store01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("store01. save, get, list, delete")

	ctx := context.Background()
	s := openTest(tst)

	rec, err := s.Save(ctx, "simple beam", sample())
	if err != nil {
		tst.Fatalf("save: %v", err)
	}
	chk.Int(tst, "id length", len(rec.ID), 36)

	e, err := s.Get(ctx, rec.ID)
	if err != nil {
		tst.Fatalf("get: %v", err)
	}
	chk.String(tst, e.Name, "simple beam")
	chk.String(tst, e.Document.Name, "simple beam")
	chk.Int(tst, "beams", len(e.Document.Beams), 1)
	chk.Int(tst, "forces", len(e.Document.Forces), 1)

	if _, err := s.Save(ctx, "second", sample()); err != nil {
		tst.Fatalf("save: %v", err)
	}
	list, err := s.List(ctx)
	if err != nil {
		tst.Fatalf("list: %v", err)
	}
	chk.Int(tst, "records", len(list), 2)

	d := e.Document
	d.Beams = append(d.Beams, frame.NewBeam(geom.V(4, 0), geom.V(6, 0)))
	if err := s.Update(ctx, rec.ID, d); err != nil {
		tst.Fatalf("update: %v", err)
	}
	e, _ = s.Get(ctx, rec.ID)
	chk.Int(tst, "beams after update", len(e.Document.Beams), 2)

	if err := s.Delete(ctx, rec.ID); err != nil {
		tst.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		tst.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		tst.Errorf("expected ErrNotFound, got %v", err)
	}
}
