// Package shell은 condact가 지원하는 셸 dialect 목록이다.
// 셸마다 변수 대입, 제거, source 문법을 데이터 행(Dialect)으로 기술한다.
// Render는 작업 목록을 셸이 eval 할 스크립트로 만들고,
// HookSnippet은 condact를 호출해 출력을 eval 하는 wrapper 함수를 반환한다.
package shell
