package plugin

import (
	"github.com/pcj/mobyprogress"
)

type discardOutput struct{}

func (discardOutput) WriteProgress(mobyprogress.Progress) error {
	return nil
}

func writeStepProgress(output mobyprogress.Output, step, message string) {
	output.WriteProgress(mobyprogress.Progress{
		ID:      step,
		Action:  step,
		Message: message,
	})
}

func writeJarProgress(output mobyprogress.Output, current, total int) {
	output.WriteProgress(mobyprogress.Progress{
		ID:         "jar",
		Action:     "writing archives",
		Current:    int64(current),
		Total:      int64(total),
		Units:      "jars",
		LastUpdate: current == total,
	})
}
