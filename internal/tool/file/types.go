package file

// -- Read File --

type ReadFileRequest struct {
	FilePath string `json:"file_path"`
}

func (r *ReadFileRequest) Validate() error {
	if r.FilePath == "" {
		return ErrPathRequired
	}
	return nil
}

type ReadFileResponse struct {
	AbsolutePath string
	Content      string
	Truncated    bool
}

// -- Write File --

type WriteFileRequest struct {
	FilePath string `json:"file_path"`
	Content  string `json:"content"`
}

func (r *WriteFileRequest) Validate() error {
	if r.FilePath == "" {
		return ErrPathRequired
	}
	return nil
}

type WriteFileResponse struct {
	AbsolutePath string
	CharsWritten int
	Created      bool
}
