package progress

// TaskStatus is the state of a single checklist entry.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
	TaskError      TaskStatus = "error"
)

// Checklist task identifiers.
const (
	TaskAnalyze = "analyze"
	TaskOutline = "outline"
	TaskImages  = "images"
	TaskPDF     = "pdf"
)

type Task struct {
	ID     string     `json:"id"`
	Label  string     `json:"label"`
	Status TaskStatus `json:"status"`
}

// Snapshot is the full checklist state published after every change.
type Snapshot struct {
	PresentationID string `json:"presentationId"`
	Tasks          []Task `json:"tasks"`
	Detail         string `json:"detail,omitempty"`
	Done           bool   `json:"done"`
	PDFURL         string `json:"pdfUrl,omitempty"`
	Error          string `json:"error,omitempty"`
}

func initialTasks() []Task {
	return []Task{
		{ID: TaskAnalyze, Label: "Processing transcript with AI", Status: TaskPending},
		{ID: TaskOutline, Label: "Creating presentation outline", Status: TaskPending},
		{ID: TaskImages, Label: "Generating images", Status: TaskPending},
		{ID: TaskPDF, Label: "Compiling PDF", Status: TaskPending},
	}
}
