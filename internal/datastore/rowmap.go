package datastore

import (
	"bytes"
	"encoding/json"
)

// RowMap は1行分のクエリ結果をカラム名キーのマッピングとして表す。
// ステートメントの結果カラム順を保持し、JSONシリアライズ時もその順序で出力する。
type RowMap struct {
	columns []string
	values  map[string]any
}

// NewRowMap はカラム名と値のスライスからRowMapを生成する。
// columnsとvaluesの長さは一致していること。
func NewRowMap(columns []string, values []any) RowMap {
	m := RowMap{
		columns: columns,
		values:  make(map[string]any, len(columns)),
	}
	for i, col := range columns {
		m.values[col] = values[i]
	}
	return m
}

// Columns は結果カラム名をステートメントの出力順で返す。
func (m RowMap) Columns() []string {
	return m.columns
}

// Get は指定カラムの値を返す。カラムが存在しない場合はnilを返す。
func (m RowMap) Get(column string) any {
	return m.values[column]
}

// MarshalJSON はカラム順を保持したJSONオブジェクトを出力する。
// 標準のmapマーシャリングはキーをソートしてしまうため、自前で順序を制御する。
func (m RowMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range m.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[col])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
