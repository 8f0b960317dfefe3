package config

import (
	"bytes"

	"github.com/BurntSushi/toml"
)

// TOMLParser는 BurntSushi/toml로 koanf.Parser를 구현한다.
type TOMLParser struct{}

// Unmarshal은 TOML 문서를 중첩 map으로 파싱한다.
func (TOMLParser) Unmarshal(b []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if _, err := toml.Decode(string(b), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal은 map을 TOML 문서로 만든다.
func (TOMLParser) Marshal(m map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
