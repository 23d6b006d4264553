package pattern

import "testing"

func BenchmarkAnalyzeRepeat(b *testing.B) {
	a, _ := NewAnalyzer(DefaultConfig())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Analyze("connection reset by peer")
	}
}

func BenchmarkAnalyzeNovel(b *testing.B) {
	a, _ := NewAnalyzer(DefaultConfig())
	messages := []string{
		"User admin logged in from 192.168.1.1",
		"disk usage at 95 percent",
		"request failed with timeout",
		"metric cpu.load recorded",
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Analyze(messages[i%len(messages)])
	}
}
