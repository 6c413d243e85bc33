package program_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelledDoExit(t *testing.T) {
	const template = `
program test
contains
  function function1()
    foo : do
      exit {label}
    end do foo
  end function function1

  function function2()
    bar : do
      if (.true.) exit {label}
    end do bar
  end function function2
end program test
`
	tests := []struct {
		name  string
		label string
		want  []string
	}{
		{
			name:  "labelled",
			label: "foo",
			want:  []string{},
		},
		{
			name:  "unlabelled",
			label: "",
			want: []string{
				`6: Usage of "exit" without label indicating which "do" construct is being exited from.`,
				`12: Usage of "exit" without label indicating which "do" construct is being exited from.`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label := tt.label
			text := strings.ReplaceAll(template, "exit {label}", strings.TrimSpace("exit "+label))
			if tt.label != "" {
				text = strings.Replace(text, "if (.true.) exit foo", "if (.true.) exit bar", 1)
			}
			assert.Equal(t, tt.want, runRule(t, "LabelledDoExit", nil, text))
		})
	}
}

func TestLabelledDoExit_LabelDoLoop(t *testing.T) {
	text := `subroutine old()
  integer :: i
  do 10 i = 1, 3
    if (i > 1) exit
10 continue
end subroutine old
`
	assert.Equal(t,
		[]string{`4: Usage of "exit" without label indicating which "do" construct is being exited from.`},
		runRule(t, "LabelledDoExit", nil, text))
}
