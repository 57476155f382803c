package lora

import "strings"

// Tensor is a named parameter's data as the training framework hands
// it over: a flat float32 buffer with its shape.
type Tensor struct {
	Shape []int64
	Data  []float32
}

// NumElements returns the element count implied by the shape.
func (t Tensor) NumElements() int {
	n := 1
	for _, dim := range t.Shape {
		n *= int(dim)
	}
	return n
}

// StateDict maps parameter names to tensors.
type StateDict map[string]Tensor

// AdapterState is the export view over a full parameter state: the
// subset worth persisting for a LoRA run. The input state is not
// modified.
//
// Kept parameters: lora_A/lora_B matrices of targeted modules, plus
// bias parameters according to cfg.Bias.
func AdapterState(full StateDict, cfg Config) StateDict {
	adapter := make(StateDict)
	for name, tensor := range full {
		if isAdapterParam(name, cfg) || isTrainableBias(name, cfg) {
			adapter[name] = tensor
		}
	}
	return adapter
}

// isAdapterParam reports whether name is a low-rank matrix of a
// targeted module.
func isAdapterParam(name string, cfg Config) bool {
	if !strings.Contains(name, "lora_A") && !strings.Contains(name, "lora_B") {
		return false
	}
	for _, target := range cfg.TargetModules {
		if strings.Contains(name, target) {
			return true
		}
	}
	return false
}

// isTrainableBias reports whether name is a bias parameter that trains
// under cfg.Bias.
func isTrainableBias(name string, cfg Config) bool {
	if !strings.HasSuffix(name, ".bias") {
		return false
	}
	switch cfg.Bias {
	case "all":
		return true
	case "lora_only":
		for _, target := range cfg.TargetModules {
			if strings.Contains(name, target) {
				return true
			}
		}
	}
	return false
}

// Summary reports trainable versus total parameter counts.
type Summary struct {
	Trainable int64
	Total     int64
}

// Percent returns the trainable share in percent.
func (s Summary) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return 100 * float64(s.Trainable) / float64(s.Total)
}

// Summarize counts trainable parameters (those the export view keeps)
// against the full parameter state.
func Summarize(full StateDict, cfg Config) Summary {
	var summary Summary
	for name, tensor := range full {
		n := int64(tensor.NumElements())
		summary.Total += n
		if isAdapterParam(name, cfg) || isTrainableBias(name, cfg) {
			summary.Trainable += n
		}
	}
	return summary
}
