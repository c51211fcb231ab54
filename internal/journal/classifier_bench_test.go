package journal

import "testing"

func BenchmarkClassify(b *testing.B) {
	lines := [][]byte{
		[]byte(`{"_TRANSPORT":"journal","_PID":"1","PRIORITY":"6","_SYSTEMD_UNIT":"docker.service","MESSAGE":"Started Docker Application Container Engine.","_HOSTNAME":"master","__REALTIME_TIMESTAMP":"1491389822667666","__MONOTONIC_TIMESTAMP":"71669967"}`),
		[]byte(`{"_TRANSPORT":"unknown_thing","PRIORITY":"3","__REALTIME_TIMESTAMP":"1491389822667666","__MONOTONIC_TIMESTAMP":"71669967"}`),
	}
	c := NewClassifier()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Classify(lines[i%len(lines)]); err != nil {
			b.Fatal(err)
		}
	}
}
