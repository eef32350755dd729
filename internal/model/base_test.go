package model

import (
	"reflect"
	"testing"
)

func TestStringArray_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		arr  StringArray
	}{
		{"空配列", StringArray{}},
		{"単一要素", StringArray{"次回は保護者同伴"}},
		{"複数要素", StringArray{"メモ1", "メモ2", "メモ3"}},
		{"カンマを含む", StringArray{"a,b", "c"}},
		{"引用符を含む", StringArray{`彼は"天才"と言った`}},
		{"バックスラッシュを含む", StringArray{`C:\tmp`}},
		{"空文字列要素", StringArray{"", "x"}},
		{"波括弧と空白", StringArray{"{内側}", "前後 空白"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := tc.arr.Value()
			if err != nil {
				t.Fatalf("Value に失敗: %v", err)
			}

			var got StringArray
			if err := got.Scan(v); err != nil {
				t.Fatalf("Scan に失敗: %v", err)
			}
			if !reflect.DeepEqual(got, tc.arr) {
				t.Errorf("往復結果が一致しない: got=%#v want=%#v", got, tc.arr)
			}
		})
	}
}

func TestStringArray_ScanNil(t *testing.T) {
	var a StringArray
	if err := a.Scan(nil); err != nil {
		t.Fatalf("NULL の Scan に失敗: %v", err)
	}
	if a != nil {
		t.Errorf("NULL は nil になるはず: %#v", a)
	}
}

func TestStringArray_ScanBytes(t *testing.T) {
	var a StringArray
	if err := a.Scan([]byte(`{x,y}`)); err != nil {
		t.Fatalf("[]byte の Scan に失敗: %v", err)
	}
	if !reflect.DeepEqual(a, StringArray{"x", "y"}) {
		t.Errorf("解析結果が不正: %#v", a)
	}
}
