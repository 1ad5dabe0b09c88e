package stream

import "io"

// Copy mirrors the events of src into dst field for field without building
// the document in memory. src must be positioned before its first event.
func Copy(dst *Builder, src DocumentReader) error {
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := copyEvent(dst, src, ev); err != nil {
			return err
		}
	}
}

func copyEvent(dst *Builder, src DocumentReader, ev EventType) error {
	switch ev {
	case EventStartMap:
		if src.InMap() {
			return dst.PutNewMap(src.FieldName())
		}
		return dst.AddNewMap()
	case EventStartArray:
		if src.InMap() {
			return dst.PutNewArray(src.FieldName())
		}
		return dst.AddNewArray()
	case EventEndMap:
		return dst.EndMap()
	case EventEndArray:
		return dst.EndArray()
	}
	v, err := src.Value()
	if err != nil {
		return err
	}
	if src.InMap() {
		return dst.Put(src.FieldName(), v)
	}
	return dst.Add(v)
}
