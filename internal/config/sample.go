package config

import "github.com/rshade/pagedtable/internal/table"

const (
	blankProfile = "https://www.bankofenglandearlycareers.co.uk/media/2747/blank-profile.jpg"
	photoProfile = "http://www.huntsvillephotographicsociety.org/packages/photo_contest/blocks/member_gallery/images/profile.png"
)

// SampleColumns returns the column set of the built-in people table.
func SampleColumns() []table.Column {
	return []table.Column{
		{DisplayName: "Image Url", FieldKey: "imageUrl", IsImage: true},
		{DisplayName: "Name", FieldKey: "name", IsSortable: true},
		{DisplayName: "User Name", FieldKey: "username", IsSortable: true},
		{DisplayName: "ID", FieldKey: "id", IsSortable: true},
		{DisplayName: "Description", FieldKey: "description"},
	}
}

// SampleRecords returns the built-in people records.
func SampleRecords() []table.Record {
	return []table.Record{
		{"imageUrl": blankProfile, "username": "john", "name": "John", "description": "Hi this is John", "id": "12345"},
		{"imageUrl": photoProfile, "username": "jean", "name": "Jean", "description": "Hi this is Jean", "id": "12346"},
		{"imageUrl": photoProfile, "username": "mary", "name": "Mary", "description": "Hi this is Mary", "id": "12347"},
		{"imageUrl": blankProfile, "username": "jerry", "name": "Jerry", "description": "Hi this is Jerry", "id": "12348"},
		{"imageUrl": blankProfile, "username": "tom", "name": "Tom", "description": "Hi this is Tom", "id": "12349"},
	}
}
