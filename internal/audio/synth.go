package audio

import (
	"io"
	"math"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Sound identifies a cue.
type Sound int

const (
	SoundJump Sound = iota
	SoundCheckpoint
	SoundSpawn
	SoundReset
	SoundIntro
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundCheckpoint:
		return "checkpoint"
	case SoundSpawn:
		return "spawn"
	case SoundReset:
		return "reset"
	case SoundIntro:
		return "intro"
	}
	return "unknown"
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

func makeBuf(n int) []byte { return make([]byte, n*8) }

func generate(s Sound) []byte {
	switch s {
	case SoundJump:
		return genJump()
	case SoundCheckpoint:
		return genCheckpoint()
	case SoundSpawn:
		return genSpawn()
	case SoundReset:
		return genReset()
	case SoundIntro:
		return genIntro()
	}
	return nil
}

// genJump: short upward FM sweep.
func genJump() []byte {
	n := int(0.16 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.4, 0.2, 0.3)
		freq := 220 + 440*p*p
		s := fm(t, freq, 1.5, 1.8*env) * env * 0.34
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genCheckpoint: bright major arpeggio.
func genCheckpoint() []byte {
	freqs := []float64{659.25, 783.99, 1046.5} // E5 G5 C6
	noteLen := SampleRate * 60 / 1000
	tail := int(0.15 * SampleRate)
	total := len(freqs)*noteLen + tail
	mix := make([]float64, total)

	for fi, freq := range freqs {
		start := fi * noteLen
		dur := total - start
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			np := float64(j) / float64(dur)
			env := adsr(np, 0.004, 0.55, 0.05, 0.35)
			s := fm(t, freq, 2.756, 4.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
			mix[start+j] += s
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genSpawn: muffled thump of an obstacle dropping in far ahead.
func genSpawn() []byte {
	n := int(0.12 * SampleRate)
	buf := makeBuf(n)
	seed := uint64(0x5eed)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.3, 0.0, 0.2)
		lp += (lcg(&seed) - lp) * 0.08
		s := math.Sin(2*math.Pi*(90-40*p)*t)*env*0.3 + lp*env*0.15
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genReset: slow descending minor chord, staggered.
func genReset() []byte {
	dur := 0.7
	n := int(dur * SampleRate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.12}, // C4
		{220.00, 0.24}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := int(note.onset * SampleRate)
		for i := start; i < n; i++ {
			t := float64(i) / SampleRate
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.3
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	buf := makeBuf(n)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

// genIntro: airy two-note chime as the intro card fades.
func genIntro() []byte {
	n := int(0.3 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		freq := 880.0
		if p > 0.35 {
			freq = 1318.51
		}
		env := adsr(p, 0.02, 0.3, 0.25, 0.4)
		s := fm(t, freq, 3.0, 1.2*env)*env*0.22 + math.Sin(2*math.Pi*freq*0.5*t)*env*0.06
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
