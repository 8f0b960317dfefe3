// Package registry는 활성화한 적 있는 환경 목록을 JSON 파일로 보관한다.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/mitchellh/go-homedir"
)

// Registry는 prefix별 환경 기록이다.
type Registry struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Entry는 하나의 기록이다.
type Entry struct {
	Name          string `json:"name"`
	LastActivated string `json:"last_activated"`
}

// Known은 envs 목록에 표시하는 환경이다.
type Known struct {
	Prefix string
	Name   string
	Base   bool
	// LastActivated는 기록이 없으면 zero time이다.
	LastActivated time.Time
}

// New는 빈 레지스트리를 생성한다.
func New() *Registry {
	return &Registry{Version: 1, Entries: make(map[string]Entry)}
}

// DefaultPath는 ~/.config/condact/environments.json을 반환한다.
func DefaultPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "condact", "environments.json")
}

// Load는 레지스트리 파일을 파싱한다. 파일 없음/파싱 실패 시 빈 레지스트리 반환 (graceful).
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("registry.Load: %w", err)
	}
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return New(), nil
	}
	if r.Entries == nil {
		r.Entries = make(map[string]Entry)
	}
	return &r, nil
}

// Record는 prefix의 활성화 시각을 기록한다.
func (r *Registry) Record(prefix, name string, at time.Time) {
	r.Entries[prefix] = Entry{Name: name, LastActivated: at.UTC().Format(time.RFC3339)}
}

// Prune은 valid가 false인 prefix를 지우고 지운 개수를 반환한다.
func (r *Registry) Prune(valid func(prefix string) bool) int {
	n := 0
	for prefix := range r.Entries {
		if !valid(prefix) {
			delete(r.Entries, prefix)
			n++
		}
	}
	return n
}

// Save는 레지스트리를 JSON 파일로 저장한다 (0600 권한).
// 임시 파일에 쓴 뒤 rename하므로 파일 전체가 한 번에 바뀐다.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".environments-*.json")
	if err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("registry.Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return fmt.Errorf("registry.Save: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// List는 root, envsDirs 아래의 환경, 기록된 환경을 합쳐 반환한다.
// isEnv가 false인 항목은 제외한다. root가 먼저, 나머지는 이름 순이다.
func (r *Registry) List(root string, envsDirs []string, isEnv func(string) bool) []Known {
	seen := make(map[string]*Known)
	add := func(prefix, name string) {
		if _, ok := seen[prefix]; ok || !isEnv(prefix) {
			return
		}
		seen[prefix] = &Known{Prefix: prefix, Name: name}
	}

	if root != "" {
		add(root, "root")
		if k, ok := seen[root]; ok {
			k.Base = true
		}
	}
	for _, dir := range envsDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				add(filepath.Join(dir, e.Name()), e.Name())
			}
		}
	}
	for prefix, entry := range r.Entries {
		add(prefix, entry.Name)
	}
	for prefix, entry := range r.Entries {
		if k, ok := seen[prefix]; ok {
			if at, err := time.Parse(time.RFC3339, entry.LastActivated); err == nil {
				k.LastActivated = at
			}
		}
	}

	out := make([]Known, 0, len(seen))
	for _, k := range seen {
		out = append(out, *k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Base != out[j].Base {
			return out[i].Base
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Prefix < out[j].Prefix
	})
	return out
}
