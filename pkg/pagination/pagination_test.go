package pagination

import "testing"

func TestParseDefaults(t *testing.T) {
	p := Parse("", "")
	if p.Page != DefaultPage {
		t.Fatalf("expected default page %d, got %d", DefaultPage, p.Page)
	}
	if p.Limit != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
}

func TestParseFallsBackOnInvalidInput(t *testing.T) {
	cases := []struct {
		page, limit string
	}{
		{"abc", "xyz"},
		{"0", "0"},
		{"-1", "-5"},
	}
	for _, c := range cases {
		p := Parse(c.page, c.limit)
		if p.Page != DefaultPage || p.Limit != DefaultLimit {
			t.Fatalf("Parse(%q, %q) = %+v, expected defaults", c.page, c.limit, p)
		}
	}
}

func TestParseExplicitValues(t *testing.T) {
	p := Parse("3", "25")
	if p.Page != 3 || p.Limit != 25 {
		t.Fatalf("expected page 3 limit 25, got %+v", p)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if got := p.Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}

	p = Params{Page: 1, Limit: 10}
	if got := p.Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	if err := (Params{Page: 1, Limit: 10}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Params{Page: 0, Limit: 10}).Validate(); err != ErrInvalidPage {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if err := (Params{Page: 1, Limit: 0}).Validate(); err != ErrInvalidLimit {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestNewMetaEmptyCollection(t *testing.T) {
	meta := NewMeta(0, Params{Page: 1, Limit: 10})
	if meta.Total != 0 {
		t.Fatalf("expected total 0, got %d", meta.Total)
	}
	if meta.TotalPages != 0 {
		t.Fatalf("expected 0 total pages, got %d", meta.TotalPages)
	}
	if meta.HasNext || meta.HasPrev {
		t.Fatalf("expected no next/prev for empty collection, got %+v", meta)
	}
}

func TestNewMetaLastPage(t *testing.T) {
	// 25 条记录，每页 10 条：第 3 页有 5 条，且没有下一页
	meta := NewMeta(25, Params{Page: 3, Limit: 10})
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if meta.HasNext {
		t.Fatalf("expected no next page on last page")
	}
	if !meta.HasPrev {
		t.Fatalf("expected prev page on page 3")
	}
}

func TestNewMetaPastEnd(t *testing.T) {
	// 超出末页不是错误：元数据仍然基于真实总数
	meta := NewMeta(25, Params{Page: 10, Limit: 10})
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if meta.HasNext {
		t.Fatalf("expected no next page past the end")
	}
	if !meta.HasPrev {
		t.Fatalf("expected has_prev past the end")
	}
}

func TestNewMetaExactMultiple(t *testing.T) {
	meta := NewMeta(30, Params{Page: 3, Limit: 10})
	if meta.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", meta.TotalPages)
	}
	if meta.HasNext {
		t.Fatalf("expected no next page when total is an exact multiple")
	}
}
