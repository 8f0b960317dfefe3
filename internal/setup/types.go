package setup

// FormRunner는 TUI 폼 실행을 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunShellSelect는 dialect 선택 UI를 표시한다. current가 기본 선택값이다.
	RunShellSelect(ids []string, current string) (string, error)

	// RunConfirm은 확인 프롬프트를 표시한다.
	RunConfirm(message string) (bool, error)
}

// Result는 setup 실행 결과다.
type Result struct {
	// Shell은 통합을 설치한 dialect 식별자다.
	Shell string
	// ConfigWritten은 이번 실행에서 설정 템플릿을 새로 썼는지 여부다.
	ConfigWritten bool
	// RCPath는 통합 대상 RC 파일이다.
	RCPath string
	// HookInstalled는 이번 실행에서 RC 파일에 스니펫을 추가했는지 여부다.
	HookInstalled bool
}
