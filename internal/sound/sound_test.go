package sound

import (
	"testing"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %v", total-n+i, buf[i][0])
			}
		}
		if !ok || n == 0 {
			return total
		}
	}
}

func TestCueLengths(t *testing.T) {
	sr := beep.SampleRate(8000)
	tests := []struct {
		name  string
		build func(beep.SampleRate) beep.Streamer
		want  int
	}{
		{"hit", HitSound, 480},
		{"miss", MissSound, 1200},
		{"breach", BreachSound, 960 + 1600},
		{"game over", GameOverSound, 6400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.build(sr)
			if s == nil {
				t.Fatal("nil streamer")
			}
			if got := drain(t, s); got != tt.want {
				t.Errorf("streamed %d samples, want %d", got, tt.want)
			}
		})
	}
}

func TestToneRejectsFrequencyAboveNyquist(t *testing.T) {
	if s := tone(beep.SampleRate(1000), 900, 0); s != nil {
		t.Error("expected nil streamer for an unplayable frequency")
	}
}

func TestDisabledPlayerIsSilent(t *testing.T) {
	p := New(false, 1)
	played := 0
	p.play = func(beep.Streamer) { played++ }

	p.Hit()
	p.Miss()
	p.Breach()
	p.GameOver()
	p.Close()

	if played != 0 {
		t.Errorf("disabled player played %d cues", played)
	}
	if p.Enabled() {
		t.Error("disabled player reports enabled")
	}
}

func TestReadyPlayerEmitsEveryCue(t *testing.T) {
	p := &Player{volume: 0.5, ready: true}
	played := 0
	p.play = func(s beep.Streamer) {
		if s == nil {
			t.Error("nil streamer sent to speaker")
		}
		played++
	}

	p.Hit()
	p.Miss()
	p.Breach()
	p.GameOver()

	if played != 4 {
		t.Errorf("played %d cues, want 4", played)
	}
}

func TestMutedVolumeIsSilent(t *testing.T) {
	s := withVolume(HitSound(beep.SampleRate(8000)), 0)
	buf := make([][2]float64, 64)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 || buf[i][1] != 0 {
			t.Fatalf("sample %d not silent: %v", i, buf[i])
		}
	}
}
