// Package searchpath는 활성화/비활성화에 따른 검색 경로(PATH) 재작성을 담당한다.
package searchpath

import "strings"

// Rewriter는 Sep로 구분된 검색 경로를 재작성한다.
// Placeholder가 비어 있지 않으면 Batch 셸의 토큰 규칙을 따른다.
type Rewriter struct {
	Sep         string
	Placeholder string
}

// Activate는 removed와 같은 항목을 모두 지우고 added를 앞에 붙인다.
// 남은 항목의 상대 순서는 유지된다.
//
// Placeholder 규칙: 토큰이 없으면 첫 번째로 지워진 위치에 토큰을 남기고,
// 토큰이 있으면 그 자리를 added로 바꾼다.
func (r Rewriter) Activate(old string, removed, added []string) string {
	entries := r.strip(r.split(old), removed)
	if r.Placeholder != "" {
		if i := indexOf(entries, r.Placeholder); i >= 0 {
			out := make([]string, 0, len(entries)+len(added)-1)
			out = append(out, entries[:i]...)
			out = append(out, added...)
			out = append(out, entries[i+1:]...)
			return r.join(out)
		}
	}
	return r.join(append(append([]string{}, added...), entries...))
}

// Deactivate는 backup이 있으면 그 값을 그대로 돌려주고, 없으면 removed만 지운다.
func (r Rewriter) Deactivate(old string, removed []string, backup string, hasBackup bool) string {
	if hasBackup {
		return backup
	}
	return r.join(r.stripAll(r.split(old), removed))
}

// Hold는 removed 구간을 토큰 하나로 남기는 Batch 전용 비활성화다.
// 지워진 항목이 없으면 토큰을 맨 앞에 붙인다.
func (r Rewriter) Hold(old string, removed []string) string {
	token := r.Placeholder
	if token == "" {
		return r.join(r.stripAll(r.split(old), removed))
	}
	entries := r.strip(r.split(old), removed)
	if indexOf(entries, token) < 0 {
		entries = append([]string{token}, entries...)
	}
	return r.join(entries)
}

// Contains는 검색 경로에 dir 항목이 있는지 보고한다.
func (r Rewriter) Contains(path, dir string) bool {
	return indexOf(r.split(path), dir) >= 0
}

// strip은 removed 항목을 지운다. Placeholder가 있고 토큰이 아직 없으면
// 첫 번째로 지운 자리에 토큰을 남긴다.
func (r Rewriter) strip(entries, removed []string) []string {
	if r.Placeholder == "" {
		return r.stripAll(entries, removed)
	}
	hasToken := indexOf(entries, r.Placeholder) >= 0
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if indexOf(removed, e) < 0 {
			out = append(out, e)
			continue
		}
		if !hasToken {
			out = append(out, r.Placeholder)
			hasToken = true
		}
	}
	return out
}

func (r Rewriter) stripAll(entries, removed []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if indexOf(removed, e) < 0 {
			out = append(out, e)
		}
	}
	return out
}

func (r Rewriter) split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, r.Sep)
}

func (r Rewriter) join(entries []string) string {
	return strings.Join(entries, r.Sep)
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
